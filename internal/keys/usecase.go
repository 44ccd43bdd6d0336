package keys

import (
	"context"

	"github.com/ima-jin/imajin-chat/internal/keys/model"
)

type KeyUsecase interface {
	// Upload stores the caller's own bundle. The signed pre-key signature is
	// verified against the identity key before anything is written.
	Upload(ctx context.Context, requester string, cmd UploadKeysCommand) error

	// Fetch is public. It returns the bundle plus at most one one-time
	// pre-key, consumed atomically. NOT_FOUND when no bundle exists for the
	// did at all, regardless of pre-key availability.
	Fetch(ctx context.Context, did string) (*model.Bundle, error)

	OwnKeys(ctx context.Context, requester string) (*OwnKeysDTO, error)
}
