package ports

import (
	"context"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts of both roles.
type AccountRepository interface {
	Insert(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	// Get returns domain.ErrAccountNotFound when no account has the id.
	Get(ctx context.Context, id int64) (*domain.Account, error)
	// FindByLogin returns domain.ErrAccountNotFound when the login is unknown.
	FindByLogin(ctx context.Context, login string) (*domain.Account, error)
	Exists(ctx context.Context, login string) (bool, error)
	GetClients(ctx context.Context) ([]*domain.Account, error)
}

// SessionStore maps opaque session tokens to account ids.
type SessionStore interface {
	// Get returns domain.ErrSessionNotFound for unknown tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Insert(ctx context.Context, session domain.Session) error
	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
