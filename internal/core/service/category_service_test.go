package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

func TestCategoryService_Create(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo(), zerolog.Nop())

	category, err := svc.Create(context.Background(), "  go  ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.Name != "go" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}
	if category.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestCategoryService_Create_EmptyName(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), "   ")
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
}

func TestCategoryService_Create_Duplicate(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), "go"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "go"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestContactService_Submit(t *testing.T) {
	repo := &stubContactRepo{}
	svc := NewContactService(repo, zerolog.Nop())

	if err := svc.Submit(context.Background(), "carol", "carol@example.com", "hello there"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(repo.contacts) != 1 {
		t.Fatalf("expected one stored message, got %d", len(repo.contacts))
	}
	if repo.contacts[0].Replied {
		t.Fatalf("messages must start unreplied")
	}
}

func TestContactService_Submit_CollectsFailures(t *testing.T) {
	svc := NewContactService(&stubContactRepo{}, zerolog.Nop())

	err := svc.Submit(context.Background(), "carol", "not-an-email", "  ")
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if len(fieldErrs) != 2 {
		t.Fatalf("email and content failures must be reported together: %v", fieldErrs)
	}
}
