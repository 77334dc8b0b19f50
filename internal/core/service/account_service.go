package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
	"github.com/thumbtack/onlineshop/internal/pkg/metrics"
)

// passwordCost is the bcrypt cost used for new password hashes.
var passwordCost = bcrypt.DefaultCost

// AccountService implements registration, login and profile management.
type AccountService struct {
	guard    *Guard
	accounts ports.AccountRepository
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAccountService(guard *Guard, accounts ports.AccountRepository, sessions ports.SessionStore, log zerolog.Logger) *AccountService {
	return &AccountService{guard: guard, accounts: accounts, sessions: sessions, log: log}
}

func (s *AccountService) RegisterClient(ctx context.Context, in ports.RegisterClientInput) (*ports.AccountView, string, error) {
	login := domain.NormalizeLogin(in.Login)
	if err := s.ensureLoginFree(ctx, login); err != nil {
		return nil, "", err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	account := domain.NewClient(login, hash,
		domain.Person{FirstName: in.FirstName, LastName: in.LastName, Patronymic: in.Patronymic},
		in.Email, in.Address, domain.NormalizePhone(in.Phone),
	)
	return s.register(ctx, account)
}

func (s *AccountService) RegisterAdmin(ctx context.Context, in ports.RegisterAdminInput) (*ports.AccountView, string, error) {
	login := domain.NormalizeLogin(in.Login)
	if err := s.ensureLoginFree(ctx, login); err != nil {
		return nil, "", err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	account := domain.NewAdmin(login, hash,
		domain.Person{FirstName: in.FirstName, LastName: in.LastName, Patronymic: in.Patronymic},
		in.Position,
	)
	return s.register(ctx, account)
}

func (s *AccountService) register(ctx context.Context, account *domain.Account) (*ports.AccountView, string, error) {
	if err := s.accounts.Insert(ctx, account); err != nil {
		return nil, "", fmt.Errorf("register %s: %w", account.Role, err)
	}

	token, err := s.openSession(ctx, account.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(account.Role)).Inc()
	s.log.Info().Int64("account_id", account.ID).Str("role", string(account.Role)).Msg("account registered")

	return accountView(account), token, nil
}

// Login opens a new session. An unknown login and a wrong password both
// fail with domain.ErrUserNotFound.
func (s *AccountService) Login(ctx context.Context, login, password string) (string, error) {
	account, err := s.accounts.FindByLogin(ctx, domain.NormalizeLogin(login))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !passwordMatches(account, password) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrUserNotFound
	}

	token, err := s.openSession(ctx, account.ID)
	if err != nil {
		return "", err
	}
	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	return token, nil
}

func (s *AccountService) EditClient(ctx context.Context, token string, in ports.EditClientInput) (*ports.AccountView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}

	account := p.Account
	if !passwordMatches(account, in.OldPassword) {
		return nil, domain.ErrWrongPassword.WithField("oldPassword")
	}

	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = hash
	account.Person = domain.Person{FirstName: in.FirstName, LastName: in.LastName, Patronymic: in.Patronymic}
	account.Client.Email = in.Email
	account.Client.Address = in.Address
	account.Client.Phone = domain.NormalizePhone(in.Phone)

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("edit client: %w", err)
	}
	return accountView(account), nil
}

func (s *AccountService) EditAdmin(ctx context.Context, token string, in ports.EditAdminInput) (*ports.AccountView, error) {
	p, err := s.guard.RequireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	account := p.Account
	if !passwordMatches(account, in.OldPassword) {
		return nil, domain.ErrWrongPassword.WithField("oldPassword")
	}

	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = hash
	account.Person = domain.Person{FirstName: in.FirstName, LastName: in.LastName, Patronymic: in.Patronymic}
	account.Admin.Position = in.Position

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("edit admin: %w", err)
	}
	return accountView(account), nil
}

// ListClients returns every client with the deposit hidden and the
// "client" user type marker set.
func (s *AccountService) ListClients(ctx context.Context, token string) ([]ports.AccountView, error) {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	clients, err := s.accounts.GetClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	out := make([]ports.AccountView, 0, len(clients))
	for _, c := range clients {
		v := accountView(c)
		v.Deposit = nil
		v.UserType = string(domain.RoleClient)
		out = append(out, *v)
	}
	return out, nil
}

// Logout drops the session. An absent session is not an error.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AccountService) Current(ctx context.Context, token string) (*ports.AccountView, error) {
	p, err := s.guard.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return accountView(p.Account), nil
}

func (s *AccountService) ensureLoginFree(ctx context.Context, login string) error {
	exists, err := s.accounts.Exists(ctx, login)
	if err != nil {
		return fmt.Errorf("check login: %w", err)
	}
	if exists {
		return domain.ErrLoginAlreadyInUse.WithField("login")
	}
	return nil
}

func (s *AccountService) openSession(ctx context.Context, accountID int64) (string, error) {
	session := domain.Session{Token: uuid.NewString(), AccountID: accountID}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	return session.Token, nil
}

// passwordKey digests the password before bcrypt, which rejects inputs over
// 72 bytes. The base64 digest is 44 bytes and never contains NUL.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func passwordMatches(account *domain.Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), passwordKey(password)) == nil
}

func accountView(a *domain.Account) *ports.AccountView {
	v := &ports.AccountView{
		ID:         a.ID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Patronymic: a.Patronymic,
	}
	switch {
	case a.Client != nil:
		deposit := a.Client.Deposit
		v.Email = a.Client.Email
		v.Address = a.Client.Address
		v.Phone = a.Client.Phone
		v.Deposit = &deposit
	case a.Admin != nil:
		v.Position = a.Admin.Position
	}
	return v
}
