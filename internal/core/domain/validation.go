package domain

import (
	"sort"
	"strings"
)

// Validated field names.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldNewPassword = "newPassword"
	FieldCode        = "code"
	FieldUsername    = "username"
	FieldName        = "name"
	FieldContent     = "content"
	FieldTitle       = "title"
	FieldURL         = "url"
)

// Validation messages, one source of truth across services.
const (
	MsgEmailNotFound  = "Email not found"
	MsgEmailNotActive = "Account not active"
	MsgEmailRequired  = "Email required"
	MsgEmailTaken     = "Email is already in use"
	MsgEmailInvalid   = "Email not valid"

	MsgPasswordNoMatch = "Password not match"
	MsgPasswordLength  = "Password at least 8 characters and max 64 characters"

	MsgCodeNotExist = "Code not exist"

	MsgUsernameRequired = "Username required"
	MsgUsernameTaken    = "Username is already in use"
	MsgUsernameSpaces   = "Username must not contain character space"
)

// FieldErrors maps field names to human-readable messages. It is the error
// payload for every input-validation failure, so independently failing
// fields are reported together in one response.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// Taken records a duplicate-key failure on the given field.
func (e FieldErrors) Taken(field string) {
	e[field] = field + " is already taken"
}

// Check is one independent validation condition. Failed true marks the
// check as violated.
type Check struct {
	Failed  bool
	Field   string
	Message string
}

// Validate runs every check and returns a FieldErrors holding one entry per
// failed check, or nil when all pass. Checks never short-circuit: a later
// failure is always recorded even when an earlier one already failed. When
// two checks target the same field the last failing one wins.
func Validate(checks ...Check) error {
	var errs FieldErrors
	for _, c := range checks {
		if !c.Failed {
			continue
		}
		if errs == nil {
			errs = make(FieldErrors, len(checks))
		}
		errs[c.Field] = c.Message
	}
	if errs == nil {
		return nil
	}
	return errs
}
