package domain

import "time"

// Role is the closed set of authorization roles.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// AuthType is the closed set of authentication methods. Email/password
// accounts and social accounts coexist; email uniqueness is scoped per
// auth type.
type AuthType string

const (
	AuthEmail  AuthType = "email"
	AuthGoogle AuthType = "google"
	AuthGitHub AuthType = "github"
)

func (a AuthType) Valid() bool {
	switch a {
	case AuthEmail, AuthGoogle, AuthGitHub:
		return true
	}
	return false
}

// Social reports whether the auth type is an external identity provider.
// Social accounts have no password and their email cannot be edited.
func (a AuthType) Social() bool {
	return a == AuthGoogle || a == AuthGitHub
}

// DefaultProfilePic is the placeholder asset served before any upload.
const DefaultProfilePic = "/default-profile.png"

// User models an account in the system. A user holds at most one active
// session token at a time; issuing a new one invalidates the previous
// session everywhere.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	ProfilePic   string    `json:"profilePic"`
	IsActive     bool      `json:"isActive"`
	Code         string    `json:"-"`
	Token        string    `json:"-"`
	Role         Role      `json:"role"`
	AuthType     AuthType  `json:"authType"`
	ProviderID   string    `json:"providerId,omitempty"`
	Images       []string  `json:"images,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
