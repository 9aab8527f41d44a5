package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/bookshelf-api/internal/metrics"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"github.com/snnyvrz/bookshelf-api/internal/repository"
	"github.com/snnyvrz/bookshelf-api/internal/schema"
	"github.com/snnyvrz/bookshelf-api/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book already exists")
)

// BookService is the only reader and writer of book records. It keeps no
// mutable state and is shared by all requests.
type BookService struct {
	repo  repository.BookRepository
	clock func() time.Time
}

func NewBookService(repo repository.BookRepository) *BookService {
	return NewBookServiceWithClock(repo, time.Now)
}

func NewBookServiceWithClock(repo repository.BookRepository, clock func() time.Time) *BookService {
	return &BookService{repo: repo, clock: clock}
}

// List returns every book, most recently created first.
func (s *BookService) List(ctx context.Context) (books []model.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, "BookService.List")
	defer func() { s.finish(span, "list", err) }()

	books, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	span.SetAttributes(attribute.Int("books.count", len(books)))
	return books, nil
}

func (s *BookService) Get(ctx context.Context, uid uuid.UUID) (book *model.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, "BookService.Get", withUID(uid))
	defer func() { s.finish(span, "get", err) }()

	book, err = s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book %s: %w", uid, err)
	}

	return book, nil
}

func (s *BookService) Create(ctx context.Context, req schema.CreateBookRequest) (book *model.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, "BookService.Create")
	defer func() { s.finish(span, "create", err) }()

	now := s.now()

	book = &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		PageCount:   req.PageCount,
		PublishDate: req.PublishDate,
		Language:    req.Language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.UID != nil {
		book.UID = *req.UID
	}

	if err = s.repo.Create(ctx, book); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBookExists
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	span.SetAttributes(attribute.String("book.uid", book.UID.String()))
	return book, nil
}

// Update applies the fields present in req to the stored book, refreshes
// updated_at and returns the book as read back from the store.
func (s *BookService) Update(ctx context.Context, uid uuid.UUID, req schema.UpdateBookRequest) (book *model.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, "BookService.Update", withUID(uid))
	defer func() { s.finish(span, "update", err) }()

	book, err = s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("load book %s: %w", uid, err)
	}

	mergeUpdate(book, req)
	book.UpdatedAt = s.nextUpdatedAt(book.UpdatedAt)

	if err = s.repo.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("update book %s: %w", uid, err)
	}

	book, err = s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("reload book %s: %w", uid, err)
	}

	return book, nil
}

func (s *BookService) Delete(ctx context.Context, uid uuid.UUID) (err error) {
	ctx, span := tracing.StartSpan(ctx, "BookService.Delete", withUID(uid))
	defer func() { s.finish(span, "delete", err) }()

	if err = s.repo.Delete(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("delete book %s: %w", uid, err)
	}

	return nil
}

func mergeUpdate(book *model.Book, req schema.UpdateBookRequest) {
	if v, ok := req.Title.Get(); ok {
		book.Title = v
	}
	if v, ok := req.Author.Get(); ok {
		book.Author = v
	}
	if v, ok := req.Publisher.Get(); ok {
		book.Publisher = v
	}
	if v, ok := req.PageCount.Get(); ok {
		book.PageCount = v
	}
	if v, ok := req.Language.Get(); ok {
		book.Language = v
	}
}

// now is truncated to microseconds, the finest resolution every supported
// store keeps.
func (s *BookService) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt never returns a time at or before prev, even when the clock
// has not advanced since the last write.
func (s *BookService) nextUpdatedAt(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func (s *BookService) finish(span trace.Span, operation string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrBookNotFound):
		result = "not_found"
	case errors.Is(err, ErrBookExists):
		result = "conflict"
	default:
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	metrics.ObserveBookOperation(operation, result)
	span.End()
}

func withUID(uid uuid.UUID) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("book.uid", uid.String()))
}
