package usecase

import (
	"context"
	"crypto/ed25519"

	"github.com/ima-jin/imajin-chat/config"
	"github.com/ima-jin/imajin-chat/internal/keys"
	"github.com/ima-jin/imajin-chat/internal/keys/model"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

const curve25519KeySize = 32

type KeyUsecase struct {
	repo   keys.KeyRepository
	logger logger.Logger
	config *config.Config
}

func NewKeyUsecase(repo keys.KeyRepository, logger logger.Logger, config *config.Config) *KeyUsecase {
	return &KeyUsecase{repo: repo, logger: logger, config: config}
}

func (uc *KeyUsecase) Upload(ctx context.Context, requester string, cmd keys.UploadKeysCommand) error {
	if len(cmd.IdentityKey) != ed25519.PublicKeySize {
		return errors.ErrInvalidIdentityKey
	}
	if len(cmd.SignedPreKey) != curve25519KeySize {
		return errors.ErrInvalidSignedPreKey
	}
	if len(cmd.Signature) != ed25519.SignatureSize {
		return errors.ErrBadPreKeySignature
	}
	// A bundle whose signed pre-key does not verify is useless to every
	// sender; reject before writing anything.
	if !ed25519.Verify(ed25519.PublicKey(cmd.IdentityKey), cmd.SignedPreKey, cmd.Signature) {
		return errors.ErrBadPreKeySignature
	}

	if len(cmd.OneTimePreKeys) > uc.config.Keys.MaxPreKeyUpload {
		return errors.ErrTooManyPreKeys
	}
	preKeys := make([]model.PreKey, 0, len(cmd.OneTimePreKeys))
	for _, k := range cmd.OneTimePreKeys {
		if len(k) != curve25519KeySize {
			return errors.ErrInvalidOneTimePreKey
		}
		preKeys = append(preKeys, model.PreKey{DID: requester, Key: k})
	}

	bundle := &model.KeyBundle{
		DID:          requester,
		IdentityKey:  cmd.IdentityKey,
		SignedPreKey: cmd.SignedPreKey,
		Signature:    cmd.Signature,
	}
	if err := uc.repo.UpsertBundle(ctx, bundle, preKeys); err != nil {
		uc.logger.Error("failed to store key bundle", "did", requester, "err", err)
		return errors.Internal("failed to store key bundle")
	}
	return nil
}

func (uc *KeyUsecase) Fetch(ctx context.Context, did string) (*model.Bundle, error) {
	stored, err := uc.repo.GetBundle(ctx, did)
	if err != nil {
		return nil, err
	}

	out := &model.Bundle{
		DID:          stored.DID,
		IdentityKey:  stored.IdentityKey,
		SignedPreKey: stored.SignedPreKey,
		Signature:    stored.Signature,
	}

	// Pre-key exhaustion is not an error; the sender falls back to the
	// signed pre-key alone.
	preKey, err := uc.repo.ClaimPreKey(ctx, did)
	if err != nil {
		uc.logger.Error("failed to claim one-time prekey", "did", did, "err", err)
		return nil, errors.Internal("failed to fetch key bundle")
	}
	if preKey != nil {
		out.OneTimePreKey = preKey.Key
		out.PreKeyID = &preKey.ID
	}
	return out, nil
}

func (uc *KeyUsecase) OwnKeys(ctx context.Context, requester string) (*keys.OwnKeysDTO, error) {
	bundle, err := uc.repo.GetBundle(ctx, requester)
	if err != nil {
		return nil, err
	}
	count, err := uc.repo.CountUnusedPreKeys(ctx, requester)
	if err != nil {
		return nil, err
	}
	return &keys.OwnKeysDTO{Bundle: bundle, UnusedPreKeys: count}, nil
}
