package resumes

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid resume input")
	ErrUnknownStyle = errors.New("unknown template style")
)

// Repo persists resumes. Every read and write is scoped to the owning user,
// so another user's resume is indistinguishable from a missing one.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	Get(ctx context.Context, userID, id string) (Resume, error)
	// ListByUser returns the user's resumes, most recently updated first.
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	Update(ctx context.Context, r Resume) error
	Delete(ctx context.Context, userID, id string) error
}
