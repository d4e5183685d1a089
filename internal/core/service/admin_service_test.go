package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

func seedAccount(t *testing.T, users *stubUserRepo, username string, role domain.Role) *domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		AuthType: domain.AuthEmail,
		IsActive: true,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return u
}

func TestAdminService_Users_AdminSeesOnlyPlainUsers(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAdminService(users, &stubContactRepo{}, zerolog.Nop())
	admin := seedAccount(t, users, "admin", domain.RoleAdmin)

	if _, err := svc.Users(context.Background(), admin, ports.ListOptions{Keyword: "a"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if users.listOpts == nil {
		t.Fatalf("repository never consulted")
	}
	if users.listOpts.Filter["role"] != string(domain.RoleUser) {
		t.Fatalf("admin listing must be pinned to role=user, got %v", users.listOpts.Filter)
	}
}

func TestAdminService_Users_ManagerSeesEveryone(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAdminService(users, &stubContactRepo{}, zerolog.Nop())
	manager := seedAccount(t, users, "manager", domain.RoleManager)

	if _, err := svc.Users(context.Background(), manager, ports.ListOptions{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users.listOpts.Filter) != 0 {
		t.Fatalf("manager listing must be unrestricted, got %v", users.listOpts.Filter)
	}
}

func TestAdminService_UpdateUser_RoleRules(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAdminService(users, &stubContactRepo{}, zerolog.Nop())

	admin := seedAccount(t, users, "admin", domain.RoleAdmin)
	manager := seedAccount(t, users, "manager", domain.RoleManager)
	target := seedAccount(t, users, "bob", domain.RoleUser)

	// an admin cannot promote anyone
	updated, err := svc.UpdateUser(context.Background(), admin, ports.UpdateUserInput{
		ID:       target.ID,
		Username: "bob",
		IsActive: true,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("admin must not assign roles, got %q", updated.Role)
	}

	// a manager can
	updated, err = svc.UpdateUser(context.Background(), manager, ports.UpdateUserInput{
		ID:       target.ID,
		Username: "bob",
		IsActive: true,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("manager role assignment lost, got %q", updated.Role)
	}

	// unknown role values are ignored even for managers
	updated, err = svc.UpdateUser(context.Background(), manager, ports.UpdateUserInput{
		ID:       target.ID,
		Username: "bob",
		IsActive: true,
		Role:     domain.Role("superuser"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("invalid role must be ignored, got %q", updated.Role)
	}
}

func TestAdminService_UpdateUser_SocialEmailImmutable(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAdminService(users, &stubContactRepo{}, zerolog.Nop())
	manager := seedAccount(t, users, "manager", domain.RoleManager)

	target, err := users.Create(context.Background(), &domain.User{
		Username:   "user42",
		Email:      "42gh@blog.com",
		AuthType:   domain.AuthGitHub,
		ProviderID: "42gh",
		IsActive:   true,
		Role:       domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed social user: %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), manager, ports.UpdateUserInput{
		ID:       target.ID,
		Username: "user42",
		Email:    "fresh@example.com",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Email != "42gh@blog.com" {
		t.Fatalf("social account email must stay provider-issued, got %q", updated.Email)
	}
}

func TestAdminService_Contacts(t *testing.T) {
	contacts := &stubContactRepo{
		listContacts: []domain.Contact{{Name: "carol", Email: "carol@example.com"}},
		listTotal:    3,
	}
	svc := NewAdminService(newStubUserRepo(), contacts, zerolog.Nop())

	page, err := svc.Contacts(context.Background(), ports.ListOptions{Keyword: "carol"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Count != 3 || len(page.Contacts) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if contacts.listOpts == nil || contacts.listOpts.Keyword != "carol" {
		t.Fatalf("options not forwarded: %+v", contacts.listOpts)
	}
}
