package contract

import (
	"context"
	"errors"

	"brainmode-be/pkg/brain"
)

var (
	ErrContextNotFound = errors.New("context not found")
	ErrContextExists   = errors.New("context already exists")
)

// ContextRepository keeps one brain.Context per view id. Implementations store copies:
// mutating a loaded context has no effect until it is saved again.
type ContextRepository interface {
	Save(ctx context.Context, id string, c *brain.Context) error
	FindByID(ctx context.Context, id string) (*brain.Context, error)
	Delete(ctx context.Context, id string) error
}
