package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	chatModel "github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/invite"
	"github.com/ima-jin/imajin-chat/internal/invite/model"
	appErrors "github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

type InviteRepository struct {
	db     *bun.DB
	logger logger.Logger
}

func NewInviteRepository(db *bun.DB, logger logger.Logger) *InviteRepository {
	return &InviteRepository{db: db, logger: logger}
}

var _ invite.InviteRepository = (*InviteRepository)(nil)

func (r *InviteRepository) CreateInvite(ctx context.Context, inv *model.Invite) error {
	if _, err := r.db.NewInsert().Model(inv).Returning("*").Exec(ctx); err != nil {
		return errors.Wrap(err, "inviteRepo.CreateInvite.Insert")
	}
	return nil
}

func (r *InviteRepository) GetInvite(ctx context.Context, id uuid.UUID) (*model.Invite, error) {
	inv := new(model.Invite)
	err := r.db.NewSelect().Model(inv).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInviteNotFound
		}
		return nil, errors.Wrap(err, "inviteRepo.GetInvite.Scan")
	}
	return inv, nil
}

func (r *InviteRepository) ListActive(ctx context.Context, conversationID uuid.UUID) ([]model.Invite, error) {
	var invs []model.Invite
	err := r.db.NewSelect().
		Model(&invs).
		Where("conversation_id = ?", conversationID).
		Where("revoked_at IS NULL").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "inviteRepo.ListActive.Scan")
	}
	return invs, nil
}

func (r *InviteRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.db.NewUpdate().
		Model((*model.Invite)(nil)).
		Set("revoked_at = ?", at).
		Where("id = ? AND revoked_at IS NULL", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "inviteRepo.Revoke.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.ErrInviteRevoked
	}
	return nil
}

func (r *InviteRepository) Redeem(ctx context.Context, inviteID uuid.UUID, p *chatModel.Participant, sysMsg *chatModel.Message) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Guarded increment: only an invite that is still active right now
		// gains a use.
		res, err := tx.NewUpdate().
			Model((*model.Invite)(nil)).
			Set("used_count = used_count + 1").
			Where("id = ?", inviteID).
			Where("revoked_at IS NULL").
			Where("(expires_at IS NULL OR expires_at > now())").
			Where("(max_uses IS NULL OR used_count < max_uses)").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "inviteRepo.Redeem.Increment")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Re-read inside the transaction to report the exact terminal
			// state the increment lost against.
			inv := new(model.Invite)
			if err := tx.NewSelect().Model(inv).Where("id = ?", inviteID).Scan(ctx); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return appErrors.ErrInviteNotFound
				}
				return errors.Wrap(err, "inviteRepo.Redeem.Reread")
			}
			switch inv.StateAt(time.Now()) {
			case model.StateRevoked:
				return appErrors.ErrInviteRevoked
			case model.StateExpired:
				return appErrors.ErrInviteExpired
			default:
				return appErrors.ErrInviteExhausted
			}
		}

		if _, err := tx.NewInsert().Model(p).Returning("*").Exec(ctx); err != nil {
			var pgErr pgdriver.Error
			if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
				// Rolls the increment back too; the usecase maps this to an
				// idempotent alreadyMember success.
				return appErrors.ErrAlreadyParticipant
			}
			return errors.Wrap(err, "inviteRepo.Redeem.InsertParticipant")
		}

		if sysMsg != nil {
			if _, err := tx.NewInsert().Model(sysMsg).Returning("*").Exec(ctx); err != nil {
				return errors.Wrap(err, "inviteRepo.Redeem.InsertSystemMessage")
			}
		}
		return nil
	})
}
