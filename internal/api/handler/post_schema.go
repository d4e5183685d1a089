package handler

import (
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type postRequest struct {
	Title         string         `json:"title"`
	Content       domain.Content `json:"content"`
	Categories    []string       `json:"categories"`
	BackgroundPic string         `json:"backgroundPic"`
}

func (r postRequest) toInput() ports.PostInput {
	return ports.PostInput{
		Title:         r.Title,
		Content:       r.Content,
		Categories:    r.Categories,
		BackgroundPic: r.BackgroundPic,
	}
}

type deletePostsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type fetchURLRequest struct {
	URL string `json:"url"`
}

type uploadedResponse struct {
	URL string `json:"url"`
}
