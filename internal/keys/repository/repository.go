package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/ima-jin/imajin-chat/internal/keys"
	"github.com/ima-jin/imajin-chat/internal/keys/model"
	appErrors "github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

type KeyRepository struct {
	db     *bun.DB
	logger logger.Logger
}

func NewKeyRepository(db *bun.DB, logger logger.Logger) *KeyRepository {
	return &KeyRepository{db: db, logger: logger}
}

var _ keys.KeyRepository = (*KeyRepository)(nil)

func (r *KeyRepository) UpsertBundle(ctx context.Context, bundle *model.KeyBundle, preKeys []model.PreKey) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		bundle.UpdatedAt = time.Now()
		_, err := tx.NewInsert().
			Model(bundle).
			On("CONFLICT (did) DO UPDATE").
			Set("identity_key = EXCLUDED.identity_key").
			Set("signed_pre_key = EXCLUDED.signed_pre_key").
			Set("signature = EXCLUDED.signature").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "keyRepo.UpsertBundle.Upsert")
		}

		if len(preKeys) > 0 {
			if _, err := tx.NewInsert().Model(&preKeys).Returning("*").Exec(ctx); err != nil {
				return errors.Wrap(err, "keyRepo.UpsertBundle.InsertPreKeys")
			}
		}
		return nil
	})
}

func (r *KeyRepository) GetBundle(ctx context.Context, did string) (*model.KeyBundle, error) {
	bundle := new(model.KeyBundle)
	err := r.db.NewSelect().Model(bundle).Where("did = ?", did).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrKeyBundleNotFound
		}
		return nil, errors.Wrap(err, "keyRepo.GetBundle.Scan")
	}
	return bundle, nil
}

func (r *KeyRepository) ClaimPreKey(ctx context.Context, did string) (*model.PreKey, error) {
	key := new(model.PreKey)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// SKIP LOCKED lets concurrent fetches claim different rows instead
		// of queueing on the same one.
		err := tx.NewSelect().
			Model(key).
			Where("did = ? AND used = ?", did, false).
			Order("id ASC").
			Limit(1).
			For("UPDATE SKIP LOCKED").
			Scan(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model(key).
			Set("used = ?", true).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "keyRepo.ClaimPreKey.MarkUsed")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "keyRepo.ClaimPreKey")
	}

	key.Used = true
	return key, nil
}

func (r *KeyRepository) CountUnusedPreKeys(ctx context.Context, did string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*model.PreKey)(nil)).
		Where("did = ? AND used = false", did).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "keyRepo.CountUnusedPreKeys")
	}
	return count, nil
}
