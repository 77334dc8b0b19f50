package handler

import "time"

// ErrorItem is one entry of the error envelope.
type ErrorItem struct {
	ErrorCode string `json:"errorCode"`
	Field     string `json:"field,omitempty"`
	Message   string `json:"message"`
}

// ErrorResponse is the error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// emptyResponse is the "{}" body of operations with nothing to return.
type emptyResponse struct{}

// --- Accounts ---

type registerClientRequest struct {
	FirstName  string `json:"firstName"  validate:"rusname"`
	LastName   string `json:"lastName"   validate:"rusname"`
	Patronymic string `json:"patronymic" validate:"optrusname"`
	Email      string `json:"email"      validate:"email"`
	Address    string `json:"address"    validate:"required"`
	Phone      string `json:"phone"      validate:"phone"`
	Login      string `json:"login"      validate:"login"`
	Password   string `json:"password"   validate:"password"`
}

type registerAdminRequest struct {
	FirstName  string `json:"firstName"  validate:"rusname"`
	LastName   string `json:"lastName"   validate:"rusname"`
	Patronymic string `json:"patronymic" validate:"optrusname"`
	Position   string `json:"position"   validate:"required"`
	Login      string `json:"login"      validate:"login"`
	Password   string `json:"password"   validate:"password"`
}

type editClientRequest struct {
	FirstName   string `json:"firstName"   validate:"rusname"`
	LastName    string `json:"lastName"    validate:"rusname"`
	Patronymic  string `json:"patronymic"  validate:"optrusname"`
	Email       string `json:"email"       validate:"email"`
	Address     string `json:"address"     validate:"required"`
	Phone       string `json:"phone"       validate:"phone"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"password"`
}

type editAdminRequest struct {
	FirstName   string `json:"firstName"   validate:"rusname"`
	LastName    string `json:"lastName"    validate:"rusname"`
	Patronymic  string `json:"patronymic"  validate:"optrusname"`
	Position    string `json:"position"    validate:"required"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"password"`
}

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// accountResponse never carries the login or the password.
type accountResponse struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Patronymic string `json:"patronymic,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	Deposit    *int   `json:"deposit,omitempty"`
	UserType   string `json:"userType,omitempty"`
}

// --- Catalog ---

type addCategoryRequest struct {
	Name     string `json:"name"     validate:"required,name"`
	ParentID *int64 `json:"parentId"`
}

type editCategoryRequest struct {
	Name     *string `json:"name"     validate:"omitnil,name"`
	ParentID *int64  `json:"parentId"`
}

type categoryResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ParentID   *int64 `json:"parentId,omitempty"`
	ParentName string `json:"parentName,omitempty"`
}

type addProductRequest struct {
	Name       string  `json:"name"       validate:"required,name"`
	Price      int     `json:"price"      validate:"gt=0"`
	Count      *int    `json:"count"      validate:"omitnil,gte=0"`
	Categories []int64 `json:"categories"`
}

// editProductRequest changes only the fields present in the body. An absent
// or null categories keeps the associations, [] removes them all.
type editProductRequest struct {
	Name       *string `json:"name"       validate:"omitnil,name"`
	Price      *int    `json:"price"      validate:"omitnil,gt=0"`
	Count      *int    `json:"count"      validate:"omitnil,gte=0"`
	Categories []int64 `json:"categories"`
}

// productResponse omits categories only on by-category rows of
// uncategorized products.
type productResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      int     `json:"price"`
	Count      int     `json:"count"`
	Categories []int64 `json:"categories,omitzero"`
}

// --- Client ---

type depositRequest struct {
	Deposit int `json:"deposit" validate:"gt=0"`
}

// purchaseRequest names a product the way the client saw it in the catalog.
type purchaseRequest struct {
	ID    int64  `json:"id"    validate:"required"`
	Name  string `json:"name"  validate:"required"`
	Price int    `json:"price" validate:"gte=0"`
	Count *int   `json:"count" validate:"omitnil,gt=0"`
}

type orderLineResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Count int    `json:"count"`
}

type basketPurchaseResponse struct {
	Bought    []orderLineResponse `json:"bought"`
	Remaining []orderLineResponse `json:"remaining"`
}

type purchaseResponse struct {
	Source      string              `json:"source"`
	Lines       []orderLineResponse `json:"lines"`
	Total       int                 `json:"total"`
	PurchasedAt time.Time           `json:"purchasedAt"`
}

// --- Server ---

type settingsResponse struct {
	MaxNameLength     int `json:"maxNameLength"`
	MinPasswordLength int `json:"minPasswordLength"`
}
