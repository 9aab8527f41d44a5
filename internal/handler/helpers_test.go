package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"github.com/snnyvrz/bookshelf-api/internal/repository"
	"github.com/snnyvrz/bookshelf-api/internal/service"
	"github.com/snnyvrz/bookshelf-api/internal/validation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupBookRouterWithRepo(bookRepo repository.BookRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Register()

	r := gin.New()

	h := NewBookHandler(service.NewBookService(bookRepo), discardLogger())
	h.RegisterRoutes(r.Group("/api/v1"))

	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	return setupBookRouterWithRepo(repository.NewGormBookRepository(db))
}

func seedBook(t *testing.T, db *gorm.DB, title string, createdAt time.Time) model.Book {
	t.Helper()

	book := model.Book{
		UID:         uuid.New(),
		Title:       title,
		Author:      "Frank Herbert",
		Publisher:   "Chilton",
		PageCount:   412,
		PublishDate: model.NewDate(1965, time.August, 1),
		Language:    "en",
		CreatedAt:   createdAt.UTC().Truncate(time.Microsecond),
		UpdatedAt:   createdAt.UTC().Truncate(time.Microsecond),
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, _ := http.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) validation.ErrorResponse {
	t.Helper()

	var resp validation.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v, body=%s", err, w.Body.String())
	}
	return resp
}

type fakeBookRepo struct {
	CreateFn   func(ctx context.Context, b *model.Book) error
	ListFn     func(ctx context.Context) ([]model.Book, error)
	FindByIDFn func(ctx context.Context, uid uuid.UUID) (*model.Book, error)
	UpdateFn   func(ctx context.Context, b *model.Book) error
	DeleteFn   func(ctx context.Context, uid uuid.UUID) error
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) List(ctx context.Context) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return []model.Book{}, nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, uid uuid.UUID) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, uid)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, uid)
	}
	return nil
}
