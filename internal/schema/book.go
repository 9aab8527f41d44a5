package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/bookshelf-api/internal/model"
)

type CreateBookRequest struct {
	UID         *uuid.UUID `json:"uid,omitempty" swaggertype:"string" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Title       string     `json:"title" binding:"required,min=1,max=255" example:"Dune"`
	Author      string     `json:"author" binding:"required,min=1,max=255" example:"Herbert"`
	Publisher   string     `json:"publisher" binding:"required,min=1,max=255" example:"Chilton"`
	PageCount   int        `json:"page_count" binding:"required,min=1" example:"412"`
	PublishDate model.Date `json:"publish_date" binding:"required" swaggertype:"string" example:"1965-06-01"`
	Language    string     `json:"language,omitempty" binding:"max=35" example:"en"`
}

// UpdateBookRequest is a sparse update: only fields present in the request
// body are applied.
type UpdateBookRequest struct {
	Title     Optional[string] `json:"title,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	Author    Optional[string] `json:"author,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	Publisher Optional[string] `json:"publisher,omitzero" binding:"omitempty,min=1,max=255" swaggertype:"string"`
	PageCount Optional[int]    `json:"page_count,omitzero" binding:"omitempty,min=1" swaggertype:"integer"`
	Language  Optional[string] `json:"language,omitzero" binding:"omitempty,max=35" swaggertype:"string"`
}

func (r UpdateBookRequest) Empty() bool {
	return !r.Title.Set && !r.Author.Set && !r.Publisher.Set &&
		!r.PageCount.Set && !r.Language.Set
}

type Book struct {
	UID         uuid.UUID  `json:"uid"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Publisher   string     `json:"publisher"`
	PublishDate model.Date `json:"publish_date" swaggertype:"string" example:"1965-06-01"`
	PageCount   int        `json:"page_count"`
	Language    string     `json:"language"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Book deleted successfully"`
}

func FromModel(b model.Book) Book {
	return Book{
		UID:         b.UID,
		Title:       b.Title,
		Author:      b.Author,
		Publisher:   b.Publisher,
		PublishDate: b.PublishDate,
		PageCount:   b.PageCount,
		Language:    b.Language,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FromModels(books []model.Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = append(out, FromModel(b))
	}
	return out
}
