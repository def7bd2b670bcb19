package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/domain/entity"
	"github.com/ledgerbook/backend/internal/integration/persistence/model"
)

// bookRepository implements the adapter.BookRepository interface.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository instance.
func NewBookRepository(db *gorm.DB) adapter.BookRepository {
	return &bookRepository{
		db: db,
	}
}

// CreateBook creates a new book in the database.
func (r *bookRepository) CreateBook(ctx context.Context, book *entity.Book) error {
	bookModel := model.BookFromEntity(book)
	result := r.db.WithContext(ctx).Create(bookModel)
	return result.Error
}

// FindReachableBookByID retrieves a book whose book and team are both
// active. Reachability is the AND of the two lifecycle states.
func (r *bookRepository) FindReachableBookByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var bookModel model.BookModel
	result := r.db.WithContext(ctx).
		Joins("INNER JOIN teams ON teams.id = books.team_id").
		Where("books.id = ? AND books.deleted_at IS NULL AND teams.deleted_at IS NULL", id).
		First(&bookModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return bookModel.ToEntity(), nil
}

// FindBookByIDUnscoped retrieves a book by ID regardless of lifecycle state.
func (r *bookRepository) FindBookByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var bookModel model.BookModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&bookModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return bookModel.ToEntity(), nil
}

// FindBooksByTeamID retrieves all active books of a team.
func (r *bookRepository) FindBooksByTeamID(ctx context.Context, teamID uuid.UUID) ([]*entity.Book, error) {
	var bookModels []model.BookModel
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND deleted_at IS NULL", teamID).
		Order("created_at ASC").
		Find(&bookModels)
	if result.Error != nil {
		return nil, result.Error
	}

	books := make([]*entity.Book, len(bookModels))
	for i := range bookModels {
		books[i] = bookModels[i].ToEntity()
	}
	return books, nil
}

// ListAllBooks retrieves every book, soft-deleted included.
func (r *bookRepository) ListAllBooks(ctx context.Context) ([]*entity.Book, error) {
	var bookModels []model.BookModel
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&bookModels)
	if result.Error != nil {
		return nil, result.Error
	}

	books := make([]*entity.Book, len(bookModels))
	for i := range bookModels {
		books[i] = bookModels[i].ToEntity()
	}
	return books, nil
}

// UpdateBook updates an existing book in the database.
func (r *bookRepository) UpdateBook(ctx context.Context, book *entity.Book) error {
	book.UpdatedAt = time.Now().UTC()
	bookModel := model.BookFromEntity(book)
	result := r.db.WithContext(ctx).Save(bookModel)
	return result.Error
}

// SoftDeleteBook marks an active book as deleted at the given instant.
func (r *bookRepository) SoftDeleteBook(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": at,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RestoreBook clears the deletion timestamp of a soft-deleted book.
func (r *bookRepository) RestoreBook(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// PurgeBook permanently deletes a book and all of its descendants in a
// single transaction, children before parents.
func (r *bookRepository) PurgeBook(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accountIDs []uuid.UUID
		if err := tx.Model(&model.AccountModel{}).Where("book_id = ?", id).Pluck("id", &accountIDs).Error; err != nil {
			return err
		}

		if len(accountIDs) > 0 {
			if err := tx.Where("account_id IN ?", accountIDs).Delete(&model.TransactionModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("book_id = ?", id).Delete(&model.AccountModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ? AND parent_id IS NOT NULL", id).Delete(&model.CategoryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&model.CategoryModel{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.BookModel{}).Error
	})
}
