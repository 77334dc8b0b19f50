package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// Guard resolves session tokens to principals and enforces role requirements.
// It keeps no state of its own.
type Guard struct {
	sessions ports.SessionStore
	accounts ports.AccountRepository
}

func NewGuard(sessions ports.SessionStore, accounts ports.AccountRepository) *Guard {
	return &Guard{sessions: sessions, accounts: accounts}
}

// Resolve returns the principal owning token. A blank token, an unknown
// token and a session whose account no longer exists all yield
// domain.ErrNotLoggedIn.
func (g *Guard) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Principal{}, domain.ErrNotLoggedIn
	}

	session, err := g.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Principal{}, domain.ErrNotLoggedIn
		}
		return domain.Principal{}, fmt.Errorf("resolve session: %w", err)
	}

	account, err := g.accounts.Get(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Principal{}, domain.ErrNotLoggedIn
		}
		return domain.Principal{}, fmt.Errorf("resolve session owner: %w", err)
	}

	return domain.Principal{Token: token, Account: account}, nil
}

// RequireAdmin resolves token and fails with domain.ErrNotAdmin unless the
// principal is an administrator.
func (g *Guard) RequireAdmin(ctx context.Context, token string) (domain.Principal, error) {
	p, err := g.Resolve(ctx, token)
	if err != nil {
		return domain.Principal{}, err
	}
	if !p.IsAdmin() {
		return domain.Principal{}, domain.ErrNotAdmin
	}
	return p, nil
}

// RequireClient resolves token and fails with domain.ErrNotClient unless the
// principal is a client.
func (g *Guard) RequireClient(ctx context.Context, token string) (domain.Principal, error) {
	p, err := g.Resolve(ctx, token)
	if err != nil {
		return domain.Principal{}, err
	}
	if !p.IsClient() {
		return domain.Principal{}, domain.ErrNotClient
	}
	return p, nil
}
