package ports

import (
	"context"

	"github.com/bnema/streams-cli/internal/domain"
)

type StreamRepository interface {
	GetByID(ctx context.Context, id domain.StreamID) (domain.Stream, error)
	List(ctx context.Context) ([]domain.Stream, error)
	Save(ctx context.Context, stream domain.Stream) error
	Delete(ctx context.Context, id domain.StreamID) error
}
