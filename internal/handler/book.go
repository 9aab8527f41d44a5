package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/bookshelf-api/internal/middleware"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"github.com/snnyvrz/bookshelf-api/internal/schema"
	"github.com/snnyvrz/bookshelf-api/internal/service"
	"github.com/snnyvrz/bookshelf-api/internal/validation"
)

type BookService interface {
	List(ctx context.Context) ([]model.Book, error)
	Get(ctx context.Context, uid uuid.UUID) (*model.Book, error)
	Create(ctx context.Context, req schema.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, uid uuid.UUID, req schema.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, uid uuid.UUID) error
}

type BookHandler struct {
	svc BookService
	log *slog.Logger
}

func NewBookHandler(svc BookService, log *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: log}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/", h.ListBooks)
		books.POST("", h.CreateBook)
		books.POST("/", h.CreateBook)
		books.GET("/:uid", h.GetBook)
		books.PATCH("/:uid", h.UpdateBook)
		books.DELETE("/:uid", h.DeleteBook)
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  Get every book, most recently created first
// @Tags         books
// @Produce      json
// @Success      200  {array}   schema.Book
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/ [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "BOOK_LIST_FAILED")
		return
	}

	c.JSON(http.StatusOK, schema.FromModels(books))
}

// GetBook godoc
// @Summary      Get a book
// @Description  Get a single book by its UID
// @Tags         books
// @Produce      json
// @Param        uid  path      string  true  "Book UID"
// @Success      200  {object}  schema.Book
// @Failure      400  {object}  validation.ErrorResponse   "Invalid UID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{uid} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	uid, ok := parseUID(c)
	if !ok {
		return
	}

	book, err := h.svc.Get(c.Request.Context(), uid)
	if err != nil {
		h.serviceError(c, err, "BOOK_FETCH_FAILED")
		return
	}

	c.JSON(http.StatusOK, schema.FromModel(*book))
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book. A uid may be supplied, otherwise one is generated.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      schema.CreateBookRequest   true  "Book to create"
// @Success      201      {object}  schema.Book
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      409      {object}  validation.ErrorResponse   "UID already in use"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/ [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req schema.CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.serviceError(c, err, "BOOK_CREATE_FAILED")
		return
	}

	c.JSON(http.StatusCreated, schema.FromModel(*book))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book. Only the fields present in the body change.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        uid      path      string                     true  "Book UID"
// @Param        payload  body      schema.UpdateBookRequest   true  "Fields to update"
// @Success      200      {object}  schema.Book
// @Failure      400      {object}  validation.ErrorResponse   "Invalid UID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{uid} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	uid, ok := parseUID(c)
	if !ok {
		return
	}

	var req schema.UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Empty() {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	book, err := h.svc.Update(c.Request.Context(), uid, req)
	if err != nil {
		h.serviceError(c, err, "BOOK_UPDATE_FAILED")
		return
	}

	c.JSON(http.StatusOK, schema.FromModel(*book))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book by its UID
// @Tags         books
// @Produce      json
// @Param        uid  path      string  true  "Book UID"
// @Success      200  {object}  schema.MessageResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid UID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{uid} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	uid, ok := parseUID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uid); err != nil {
		h.serviceError(c, err, "BOOK_DELETE_FAILED")
		return
	}

	c.JSON(http.StatusOK, schema.MessageResponse{Message: "Book deleted successfully"})
}

func parseUID(c *gin.Context) (uuid.UUID, bool) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"invalid book uid",
		)
		return uuid.Nil, false
	}
	return uid, true
}

func (h *BookHandler) serviceError(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		writeError(c, http.StatusNotFound,
			"BOOK_NOT_FOUND",
			"Book not found",
		)
	case errors.Is(err, service.ErrBookExists):
		writeError(c, http.StatusConflict,
			"BOOK_ALREADY_EXISTS",
			"a book with this uid already exists",
		)
	default:
		h.internalError(c, err, code)
	}
}

func (h *BookHandler) internalError(c *gin.Context, err error, code string) {
	h.log.Error("book operation failed",
		"code", code,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", middleware.GetRequestID(c),
	)
	_ = c.Error(err)

	writeError(c, http.StatusInternalServerError, code, "Internal server error")
}
