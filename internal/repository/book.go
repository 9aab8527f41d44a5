package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// updatableColumns are written on every update, including zero values.
var updatableColumns = []string{
	"title",
	"author",
	"publisher",
	"page_count",
	"language",
	"updated_at",
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, uid uuid.UUID) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, uid uuid.UUID) error
}

// GormBookRepository scopes every call to its own session bound to the
// caller's context; nothing is held between calls.
type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || r.exists(ctx, book.UID) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// exists backs up driver error translation, which does not cover primary key
// violations on every dialect.
func (r *GormBookRepository) exists(ctx context.Context, uid uuid.UUID) bool {
	if uid == uuid.Nil {
		return false
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("uid = ?", uid).
		Count(&count).Error
	return err == nil && count > 0
}

func (r *GormBookRepository) FindByID(ctx context.Context, uid uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		First(&book, "uid = ?", uid).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	books := make([]model.Book, 0)
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("uid").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("uid = ?", book.UID).
		Select(updatableColumns).
		Updates(map[string]any{
			"title":      book.Title,
			"author":     book.Author,
			"publisher":  book.Publisher,
			"page_count": book.PageCount,
			"language":   book.Language,
			"updated_at": book.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBookRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "uid = ?", uid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
