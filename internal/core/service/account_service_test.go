package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

func clientInput(login string) ports.RegisterClientInput {
	return ports.RegisterClientInput{
		FirstName: "Анна",
		LastName:  "Смирнова",
		Email:     "anna@example.com",
		Address:   "Омск, ул. Ленина 1",
		Phone:     "+7-913-123-45-67",
		Login:     login,
		Password:  "password1",
	}
}

func TestAccountService_RegisterClient(t *testing.T) {
	f := newFixture()

	view, token, err := f.accountSvc.RegisterClient(context.Background(), clientInput("Anna"))
	if err != nil {
		t.Fatalf("RegisterClient returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
	if view.Phone != "89131234567" {
		t.Fatalf("phone not normalized: %q", view.Phone)
	}
	if view.Deposit == nil || *view.Deposit != 0 {
		t.Fatalf("expected zero deposit, got %v", view.Deposit)
	}

	stored := f.accounts.accounts[view.ID]
	if stored.Login != "anna" {
		t.Fatalf("login not lowercased: %q", stored.Login)
	}
	if _, err := bcrypt.Cost([]byte(stored.PasswordHash)); err != nil {
		t.Fatalf("stored password is not a bcrypt hash: %v", err)
	}
	if !passwordMatches(stored, "password1") || passwordMatches(stored, "password2") {
		t.Fatalf("stored hash does not match password")
	}
	if f.accountID(token) != view.ID {
		t.Fatalf("session does not point at the new account")
	}
}

func TestAccountService_Register_LoginInUseAcrossRoles(t *testing.T) {
	f := newFixture()
	f.adminToken("shared")

	_, _, err := f.accountSvc.RegisterClient(context.Background(), clientInput("SHARED"))
	if !errors.Is(err, domain.ErrLoginAlreadyInUse) {
		t.Fatalf("expected ErrLoginAlreadyInUse, got %v", err)
	}
	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Field != "login" {
		t.Fatalf("expected field login, got %v", err)
	}
	if len(f.accounts.accounts) != 1 {
		t.Fatalf("expected no new account, have %d", len(f.accounts.accounts))
	}
}

func TestAccountService_Login(t *testing.T) {
	f := newFixture()
	f.clientToken("buyer")
	ctx := context.Background()

	token, err := f.accountSvc.Login(ctx, "BUYER", "password1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if _, err := f.guard.RequireClient(ctx, token); err != nil {
		t.Fatalf("new token does not resolve: %v", err)
	}

	if _, err := f.accountSvc.Login(ctx, "buyer", "wrong-pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("wrong password: expected ErrUserNotFound, got %v", err)
	}
	if _, err := f.accountSvc.Login(ctx, "nobody", "password1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown login: expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_EditClient(t *testing.T) {
	f := newFixture()
	token := f.clientToken("buyer")

	view, err := f.accountSvc.EditClient(context.Background(), token, ports.EditClientInput{
		FirstName:   "Мария",
		LastName:    "Смирнова",
		Email:       "maria@example.com",
		Address:     "Томск",
		Phone:       "8-913-765-43-21",
		OldPassword: "password1",
		NewPassword: "password2",
	})
	if err != nil {
		t.Fatalf("EditClient returned error: %v", err)
	}
	if view.FirstName != "Мария" || view.Phone != "89137654321" {
		t.Fatalf("unexpected view: %+v", view)
	}

	if _, err := f.accountSvc.Login(context.Background(), "buyer", "password2"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	stored := f.accounts.accounts[f.accountID(token)]
	if stored.Role != domain.RoleClient || stored.Client == nil || stored.Admin != nil {
		t.Fatalf("edit changed the role: %+v", stored)
	}
	if stored.Client.Email != "maria@example.com" || stored.Client.Deposit != 0 {
		t.Fatalf("unexpected client details: %+v", stored.Client)
	}
}

func TestAccountService_EditAdmin(t *testing.T) {
	f := newFixture()
	token := f.adminToken("boss")

	view, err := f.accountSvc.EditAdmin(context.Background(), token, ports.EditAdminInput{
		FirstName:   "Пётр",
		LastName:    "Петров",
		Position:    "director",
		OldPassword: "password1",
		NewPassword: "password2",
	})
	if err != nil {
		t.Fatalf("EditAdmin returned error: %v", err)
	}
	if view.FirstName != "Пётр" || view.Position != "director" || view.Deposit != nil {
		t.Fatalf("unexpected view: %+v", view)
	}

	stored := f.accounts.accounts[f.accountID(token)]
	if stored.Role != domain.RoleAdmin || stored.Admin == nil || stored.Client != nil {
		t.Fatalf("edit changed the role: %+v", stored)
	}
	if stored.Admin.Position != "director" {
		t.Fatalf("position not updated: %+v", stored.Admin)
	}
	if _, err := f.accountSvc.ListClients(context.Background(), token); err != nil {
		t.Fatalf("admin rights lost after edit: %v", err)
	}
}

func TestAccountService_LongPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	long := strings.Repeat("пароль", 7)

	in := clientInput("longpass")
	in.Password = long
	if _, _, err := f.accountSvc.RegisterClient(ctx, in); err != nil {
		t.Fatalf("RegisterClient with %d-byte password returned error: %v", len(long), err)
	}
	if _, err := f.accountSvc.Login(ctx, "longpass", long); err != nil {
		t.Fatalf("login with long password failed: %v", err)
	}
	// passwords sharing the first 72 bytes must still differ
	if _, err := f.accountSvc.Login(ctx, "longpass", long+"x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for a longer password, got %v", err)
	}

	token := f.adminToken("boss")
	if _, err := f.accountSvc.EditAdmin(ctx, token, ports.EditAdminInput{
		FirstName:   "Иван",
		LastName:    "Петров",
		Position:    "manager",
		OldPassword: "password1",
		NewPassword: long,
	}); err != nil {
		t.Fatalf("EditAdmin with long password returned error: %v", err)
	}
}

func TestAccountService_EditClient_WrongPassword(t *testing.T) {
	f := newFixture()
	token := f.clientToken("buyer")

	_, err := f.accountSvc.EditClient(context.Background(), token, ports.EditClientInput{
		FirstName:   "Мария",
		LastName:    "Смирнова",
		OldPassword: "not-it",
		NewPassword: "password2",
	})
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if f.accounts.updates != 0 {
		t.Fatalf("account was updated despite wrong password")
	}
	if f.accounts.accounts[f.accountID(token)].FirstName != "Анна" {
		t.Fatalf("profile changed despite wrong password")
	}
}

func TestAccountService_EditAdmin_RequiresAdmin(t *testing.T) {
	f := newFixture()
	client := f.clientToken("buyer")

	_, err := f.accountSvc.EditAdmin(context.Background(), client, ports.EditAdminInput{OldPassword: "password1"})
	if !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestAccountService_ListClients(t *testing.T) {
	f := newFixture()
	admin := f.adminToken("boss")
	f.clientToken("first")
	f.clientToken("second")
	ctx := context.Background()

	clients, err := f.accountSvc.ListClients(ctx, admin)
	if err != nil {
		t.Fatalf("ListClients returned error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	for _, c := range clients {
		if c.Deposit != nil {
			t.Fatalf("deposit must be hidden: %+v", c)
		}
		if c.UserType != "client" {
			t.Fatalf("unexpected user type %q", c.UserType)
		}
	}

	client := f.clientToken("third")
	if _, err := f.accountSvc.ListClients(ctx, client); !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestAccountService_Logout(t *testing.T) {
	f := newFixture()
	token := f.clientToken("buyer")
	ctx := context.Background()

	if err := f.accountSvc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := f.accountSvc.Current(ctx, token); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn after logout, got %v", err)
	}

	if err := f.accountSvc.Logout(ctx, token); err != nil {
		t.Fatalf("second Logout returned error: %v", err)
	}
	if err := f.accountSvc.Logout(ctx, ""); err != nil {
		t.Fatalf("Logout with blank token returned error: %v", err)
	}
}

func TestAccountService_Current(t *testing.T) {
	f := newFixture()
	token := f.adminToken("boss")

	view, err := f.accountSvc.Current(context.Background(), token)
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if view.Position != "manager" || view.Deposit != nil {
		t.Fatalf("unexpected admin view: %+v", view)
	}
}
