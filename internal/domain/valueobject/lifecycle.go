// Package valueobject defines immutable domain value objects.
package valueobject

import (
	"errors"
	"time"
)

// Lifecycle errors.
var (
	// ErrAlreadyDeleted is returned when soft-deleting an entity that is already soft-deleted.
	ErrAlreadyDeleted = errors.New("entity is already deleted")

	// ErrNotDeleted is returned when restoring or purging an entity that is not soft-deleted.
	ErrNotDeleted = errors.New("entity is not deleted")
)

// Lifecycle models the visibility state of a soft-deletable entity.
// An entity is either active or soft-deleted at a known instant; permanent
// deletion removes the row entirely and is never represented here.
type Lifecycle struct {
	deletedAt *time.Time
}

// ActiveLifecycle returns the lifecycle of a live entity.
func ActiveLifecycle() Lifecycle {
	return Lifecycle{}
}

// SoftDeletedLifecycle returns the lifecycle of an entity soft-deleted at the given instant.
func SoftDeletedLifecycle(at time.Time) Lifecycle {
	return Lifecycle{deletedAt: &at}
}

// IsActive reports whether the entity is visible through normal access paths.
func (l Lifecycle) IsActive() bool {
	return l.deletedAt == nil
}

// IsSoftDeleted reports whether the entity is hidden by a soft delete.
func (l Lifecycle) IsSoftDeleted() bool {
	return l.deletedAt != nil
}

// DeletedAt returns the soft-delete timestamp, or nil for an active entity.
func (l Lifecycle) DeletedAt() *time.Time {
	if l.deletedAt == nil {
		return nil
	}
	at := *l.deletedAt
	return &at
}

// SoftDelete transitions active → soft-deleted. Soft-deleting twice is an error,
// not an idempotent no-op.
func (l Lifecycle) SoftDelete(at time.Time) (Lifecycle, error) {
	if l.IsSoftDeleted() {
		return l, ErrAlreadyDeleted
	}
	return SoftDeletedLifecycle(at), nil
}

// Restore transitions soft-deleted → active.
func (l Lifecycle) Restore() (Lifecycle, error) {
	if l.IsActive() {
		return l, ErrNotDeleted
	}
	return ActiveLifecycle(), nil
}

// CanPurge reports whether permanent deletion is legal. Purging is only
// reachable from the soft-deleted state.
func (l Lifecycle) CanPurge() error {
	if l.IsActive() {
		return ErrNotDeleted
	}
	return nil
}
