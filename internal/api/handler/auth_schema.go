package handler

import (
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// Request payloads for the identity surface. Field-level semantics
// (uniqueness, password rules, account state) are validated in the
// services so that independent failures accumulate into one response;
// the shapes here stay permissive on purpose.

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type activateRequest struct {
	Code string `json:"code"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type updateInfoRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type updatePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type uploadProfilePicRequest struct {
	Image string `json:"image" validate:"required"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// paginationRequest mirrors ports.Pagination on the wire.
type paginationRequest struct {
	Page    int64 `json:"page"`
	PerPage int64 `json:"perpage"`
}

// listOptionsRequest is the options bundle accepted by the moderation
// listings: keyword search, field filter, page selector.
type listOptionsRequest struct {
	Keyword    string            `json:"keyword"`
	Filter     map[string]any    `json:"filter"`
	Pagination paginationRequest `json:"pagination"`
}

func (r listOptionsRequest) toPorts() ports.ListOptions {
	return ports.ListOptions{
		Keyword: r.Keyword,
		Filter:  r.Filter,
		Pagination: ports.Pagination{
			Page:    r.Pagination.Page,
			PerPage: r.Pagination.PerPage,
		},
	}
}
