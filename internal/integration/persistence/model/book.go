package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
	"github.com/ledgerbook/backend/internal/domain/valueobject"
)

// BookModel represents the books table in the database.
type BookModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name      string     `gorm:"type:varchar(100);not null"`
	Currency  string     `gorm:"type:varchar(3);not null"`
	DeletedAt *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the BookModel.
func (BookModel) TableName() string {
	return "books"
}

// ToEntity converts a BookModel to a domain Book entity.
func (m *BookModel) ToEntity() *entity.Book {
	lifecycle := valueobject.ActiveLifecycle()
	if m.DeletedAt != nil {
		lifecycle = valueobject.SoftDeletedLifecycle(*m.DeletedAt)
	}

	return &entity.Book{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Name:      m.Name,
		Currency:  m.Currency,
		Lifecycle: lifecycle,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BookFromEntity creates a BookModel from a domain Book entity.
func BookFromEntity(book *entity.Book) *BookModel {
	return &BookModel{
		ID:        book.ID,
		TeamID:    book.TeamID,
		Name:      book.Name,
		Currency:  book.Currency,
		DeletedAt: book.Lifecycle.DeletedAt(),
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}
