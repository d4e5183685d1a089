package domain

import (
	"errors"
	"testing"
)

func TestValidate_AllPass(t *testing.T) {
	err := Validate(
		Check{Failed: false, Field: FieldEmail, Message: MsgEmailRequired},
		Check{Failed: false, Field: FieldPassword, Message: MsgPasswordLength},
	)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	err := Validate(
		Check{Failed: true, Field: FieldUsername, Message: MsgUsernameRequired},
		Check{Failed: false, Field: FieldEmail, Message: MsgEmailTaken},
		Check{Failed: true, Field: FieldEmail, Message: MsgEmailRequired},
		Check{Failed: true, Field: FieldPassword, Message: MsgPasswordLength},
	)
	if err == nil {
		t.Fatalf("expected error")
	}

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if len(fieldErrs) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(fieldErrs), fieldErrs)
	}
	if fieldErrs[FieldUsername] != MsgUsernameRequired {
		t.Fatalf("unexpected username message: %q", fieldErrs[FieldUsername])
	}
	if fieldErrs[FieldEmail] != MsgEmailRequired {
		t.Fatalf("unexpected email message: %q", fieldErrs[FieldEmail])
	}
	if fieldErrs[FieldPassword] != MsgPasswordLength {
		t.Fatalf("unexpected password message: %q", fieldErrs[FieldPassword])
	}
}

func TestValidate_LastFailingCheckWinsPerField(t *testing.T) {
	err := Validate(
		Check{Failed: true, Field: FieldEmail, Message: MsgEmailRequired},
		Check{Failed: true, Field: FieldEmail, Message: MsgEmailInvalid},
	)

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if fieldErrs[FieldEmail] != MsgEmailInvalid {
		t.Fatalf("expected last message to win, got %q", fieldErrs[FieldEmail])
	}
}

func TestFieldErrors_ErrorIsDeterministic(t *testing.T) {
	errs := FieldErrors{
		FieldPassword: MsgPasswordNoMatch,
		FieldEmail:    MsgEmailNotFound,
	}
	want := "email: Email not found; password: Password not match"
	if got := errs.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestContent_ImageURLs(t *testing.T) {
	content := Content{
		Blocks: []Block{
			{Type: "paragraph", Data: map[string]any{"text": "hello"}},
			{Type: BlockImage, Data: map[string]any{
				"file": map[string]any{"url": "https://cdn.example.com/a.png"},
			}},
			{Type: BlockImage, Data: map[string]any{"file": "malformed"}},
			{Type: BlockImage, Data: map[string]any{
				"file": map[string]any{"url": "https://cdn.example.com/b.png"},
			}},
		},
	}

	urls := content.ImageURLs()
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://cdn.example.com/a.png" || urls[1] != "https://cdn.example.com/b.png" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}
