package domain

import "errors"

// ErrorKind is the machine-readable code of a business-rule violation.
// The string value is what clients see in the "errorCode" field.
type ErrorKind string

const (
	KindNotLoggedIn            ErrorKind = "NotLogin"
	KindNotAdmin               ErrorKind = "NotAdmin"
	KindNotClient              ErrorKind = "NotClient"
	KindLoginAlreadyInUse      ErrorKind = "LoginInUse"
	KindUserNotFound           ErrorKind = "UserNotFound"
	KindWrongPassword          ErrorKind = "WrongPassword"
	KindCategoryNotFound       ErrorKind = "CategoryNotFound"
	KindSameCategoryName       ErrorKind = "SameCategoryName"
	KindSecondLevelSubcategory ErrorKind = "SecondSubcategory"
	KindCategoryToSubcategory  ErrorKind = "CategoryToSubcategory"
	KindEditCategoryEmpty      ErrorKind = "EditCategoryEmpty"
	KindProductNotFound        ErrorKind = "ProductNotFound"
	KindWrongProductInfo       ErrorKind = "WrongProductInfo"
	KindNotEnoughProduct       ErrorKind = "NotEnoughProduct"
	KindNotEnoughMoney         ErrorKind = "NotEnoughMoney"
)

var messages = map[ErrorKind]string{
	KindNotLoggedIn:            "not logged in",
	KindNotAdmin:               "administrator rights required",
	KindNotClient:              "client rights required",
	KindLoginAlreadyInUse:      "login is already in use",
	KindUserNotFound:           "user not found",
	KindWrongPassword:          "wrong password",
	KindCategoryNotFound:       "category not found",
	KindSameCategoryName:       "category with this name already exists",
	KindSecondLevelSubcategory: "subcategory cannot have subcategories",
	KindCategoryToSubcategory:  "category with subcategories cannot become a subcategory",
	KindEditCategoryEmpty:      "nothing to edit",
	KindProductNotFound:        "product not found",
	KindWrongProductInfo:       "product info does not match",
	KindNotEnoughProduct:       "not enough product in stock",
	KindNotEnoughMoney:         "not enough money on deposit",
}

// Error is the single error type returned by core operations. Field, when
// set, names the request field the violation is attributed to.
type Error struct {
	Kind  ErrorKind
	Field string
}

func (e *Error) Error() string {
	msg, ok := messages[e.Kind]
	if !ok {
		msg = string(e.Kind)
	}
	if e.Field != "" {
		return e.Field + ": " + msg
	}
	return msg
}

// Message returns the human-readable description without the field prefix.
func (e *Error) Message() string {
	if msg, ok := messages[e.Kind]; ok {
		return msg
	}
	return string(e.Kind)
}

// Is matches on Kind only, so errors.Is(err, ErrProductNotFound) holds
// regardless of the attached field.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// WithField returns a copy of e attributed to field.
func (e *Error) WithField(field string) *Error {
	return &Error{Kind: e.Kind, Field: field}
}

// KindOf extracts the kind of a core error; ok is false for any other error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

var (
	ErrNotLoggedIn            = &Error{Kind: KindNotLoggedIn}
	ErrNotAdmin               = &Error{Kind: KindNotAdmin}
	ErrNotClient              = &Error{Kind: KindNotClient}
	ErrLoginAlreadyInUse      = &Error{Kind: KindLoginAlreadyInUse}
	ErrUserNotFound           = &Error{Kind: KindUserNotFound}
	ErrWrongPassword          = &Error{Kind: KindWrongPassword}
	ErrCategoryNotFound       = &Error{Kind: KindCategoryNotFound}
	ErrSameCategoryName       = &Error{Kind: KindSameCategoryName}
	ErrSecondLevelSubcategory = &Error{Kind: KindSecondLevelSubcategory}
	ErrCategoryToSubcategory  = &Error{Kind: KindCategoryToSubcategory}
	ErrEditCategoryEmpty      = &Error{Kind: KindEditCategoryEmpty}
	ErrProductNotFound        = &Error{Kind: KindProductNotFound}
	ErrWrongProductInfo       = &Error{Kind: KindWrongProductInfo}
	ErrNotEnoughProduct       = &Error{Kind: KindNotEnoughProduct}
	ErrNotEnoughMoney         = &Error{Kind: KindNotEnoughMoney}
)

// Storage-level lookups that miss. These never reach the caller as-is; the
// services translate them into the kinds above.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrSessionNotFound = errors.New("session not found")
)
