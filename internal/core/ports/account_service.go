package ports

import "context"

// RegisterClientInput carries the registration form of a client.
type RegisterClientInput struct {
	FirstName  string
	LastName   string
	Patronymic string
	Email      string
	Address    string
	Phone      string
	Login      string
	Password   string
}

// RegisterAdminInput carries the registration form of an administrator.
type RegisterAdminInput struct {
	FirstName  string
	LastName   string
	Patronymic string
	Position   string
	Login      string
	Password   string
}

// EditClientInput replaces the editable profile of a client.
type EditClientInput struct {
	FirstName   string
	LastName    string
	Patronymic  string
	Email       string
	Address     string
	Phone       string
	OldPassword string
	NewPassword string
}

// EditAdminInput replaces the editable profile of an administrator.
type EditAdminInput struct {
	FirstName   string
	LastName    string
	Patronymic  string
	Position    string
	OldPassword string
	NewPassword string
}

// AccountView is the outward projection of an account. Login and password
// never leave the service. Deposit is nil when it must not be shown.
type AccountView struct {
	ID         int64
	FirstName  string
	LastName   string
	Patronymic string
	Email      string
	Address    string
	Phone      string
	Position   string
	Deposit    *int
	UserType   string
}

// AccountService defines registration, login and profile use cases.
type AccountService interface {
	RegisterClient(ctx context.Context, in RegisterClientInput) (*AccountView, string, error)
	RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*AccountView, string, error)
	Login(ctx context.Context, login, password string) (string, error)
	EditClient(ctx context.Context, token string, in EditClientInput) (*AccountView, error)
	EditAdmin(ctx context.Context, token string, in EditAdminInput) (*AccountView, error)
	ListClients(ctx context.Context, token string) ([]AccountView, error)
	Logout(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (*AccountView, error)
}
