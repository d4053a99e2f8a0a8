package cart

import (
	"context"
	"errors"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
)

// Storage mirrors cart lines to durable client-session storage. The in-memory
// store stays authoritative; storage is best-effort.
type Storage interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNotStored = errors.New("no cart stored for session")
