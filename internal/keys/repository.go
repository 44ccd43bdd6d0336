package keys

import (
	"context"

	"github.com/ima-jin/imajin-chat/internal/keys/model"
)

type KeyRepository interface {
	// Bundle upsert plus the one-time pre-key batch in one transaction.
	UpsertBundle(ctx context.Context, bundle *model.KeyBundle, preKeys []model.PreKey) error
	GetBundle(ctx context.Context, did string) (*model.KeyBundle, error)

	// Atomically select one unused pre-key for did and mark it used.
	// Returns (nil, nil) when none are left; a pre-key row is never handed
	// out twice.
	ClaimPreKey(ctx context.Context, did string) (*model.PreKey, error)

	CountUnusedPreKeys(ctx context.Context, did string) (int, error)
}
