package domain

import "strings"

// Role discriminates the two kinds of accounts.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Person holds the name parts shared by every account.
type Person struct {
	FirstName  string
	LastName   string
	Patronymic string
}

// ClientDetails is present only on client accounts.
type ClientDetails struct {
	Email   string
	Address string
	Phone   string
	Deposit int
}

// AdminDetails is present only on administrator accounts.
type AdminDetails struct {
	Position string
}

// Account is either a client or an administrator. Exactly one of Client and
// Admin is non-nil and it always agrees with Role.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	Person
	Client *ClientDetails
	Admin  *AdminDetails
}

func (a *Account) IsAdmin() bool  { return a.Role == RoleAdmin }
func (a *Account) IsClient() bool { return a.Role == RoleClient }

// NewClient builds a client account with a zero deposit.
func NewClient(login, passwordHash string, person Person, email, address, phone string) *Account {
	return &Account{
		Login:        login,
		PasswordHash: passwordHash,
		Role:         RoleClient,
		Person:       person,
		Client:       &ClientDetails{Email: email, Address: address, Phone: phone},
	}
}

// NewAdmin builds an administrator account.
func NewAdmin(login, passwordHash string, person Person, position string) *Account {
	return &Account{
		Login:        login,
		PasswordHash: passwordHash,
		Role:         RoleAdmin,
		Person:       person,
		Admin:        &AdminDetails{Position: position},
	}
}

// NormalizeLogin makes logins case-insensitive for storage and lookup.
func NormalizeLogin(login string) string {
	return strings.ToLower(login)
}

// NormalizePhone strips hyphens and rewrites the +7 country code to the
// domestic 8 trunk prefix.
func NormalizePhone(phone string) string {
	phone = strings.ReplaceAll(phone, "-", "")
	if strings.HasPrefix(phone, "+7") {
		phone = "8" + strings.TrimPrefix(phone, "+7")
	}
	return phone
}

// Session binds an opaque token to the account that logged in.
type Session struct {
	Token     string
	AccountID int64
}

// Principal is the authenticated identity resolved from a session token.
type Principal struct {
	Token   string
	Account *Account
}

func (p Principal) IsAdmin() bool  { return p.Account.IsAdmin() }
func (p Principal) IsClient() bool { return p.Account.IsClient() }
