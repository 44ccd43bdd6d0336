package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	inviteModel "github.com/ima-jin/imajin-chat/internal/invite/model"
	appErrors "github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

type ChatRepository struct {
	db     *bun.DB
	logger logger.Logger
}

func NewChatRepository(db *bun.DB, logger logger.Logger) *ChatRepository {
	return &ChatRepository{db: db, logger: logger}
}

var _ chat.ChatRepository = (*ChatRepository)(nil)

func integrityViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.IntegrityViolation()
	}
	return false
}

func (r *ChatRepository) CreateConversation(ctx context.Context, conv *model.Conversation, parts []model.Participant, sysMsg *model.Message) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(conv).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.CreateConversation.InsertConversation")
		}

		for i := range parts {
			parts[i].ConversationID = conv.ID
		}
		if _, err := tx.NewInsert().Model(&parts).Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.CreateConversation.InsertParticipants")
		}

		if sysMsg != nil {
			sysMsg.ConversationID = conv.ID
			if _, err := tx.NewInsert().Model(sysMsg).Returning("*").Exec(ctx); err != nil {
				return errors.Wrap(err, "chatRepo.CreateConversation.InsertSystemMessage")
			}
		}
		return nil
	})
	if integrityViolation(err) {
		return appErrors.ErrDuplicateDirect
	}
	return err
}

func (r *ChatRepository) GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	conv := new(model.Conversation)
	err := r.db.NewSelect().Model(conv).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrConversationNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetConversation.Scan")
	}
	return conv, nil
}

func (r *ChatRepository) FindDirectBetween(ctx context.Context, didA, didB string) (*model.Conversation, error) {
	conv := new(model.Conversation)
	err := r.db.NewSelect().
		Model(conv).
		Where("direct_key = ?", model.DirectKeyFor(didA, didB)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrConversationNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.FindDirectBetween.Scan")
	}
	return conv, nil
}

func (r *ChatRepository) ListConversationsFor(ctx context.Context, did string) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.NewSelect().
		Model(&convs).
		Join(`JOIN participants AS p ON p.conversation_id = "conversation".id`).
		Where("p.did = ?", did).
		OrderExpr(`COALESCE("conversation".last_message_at, "conversation".created_at) DESC`).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListConversationsFor.Scan")
	}
	return convs, nil
}

func (r *ChatRepository) UpdateConversation(ctx context.Context, id uuid.UUID, patch chat.ConversationPatch) error {
	q := r.db.NewUpdate().
		Model((*model.Conversation)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id)

	if patch.Name != nil {
		q = q.Set("name = ?", *patch.Name)
	}
	if patch.Description != nil {
		q = q.Set("description = ?", *patch.Description)
	}
	if patch.Avatar != nil {
		q = q.Set("avatar = ?", *patch.Avatar)
	}
	if patch.Visibility != nil {
		q = q.Set("visibility = ?", *patch.Visibility)
	}
	if patch.TrustRadius != nil {
		q = q.Set("trust_radius = ?", *patch.TrustRadius)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.UpdateConversation.Exec")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.ErrConversationNotFound
	}
	return nil
}

// DeleteConversation removes the conversation and everything hanging off it.
// Children go first so the delete also works without FK cascade support.
func (r *ChatRepository) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*model.Message)(nil)).Where("conversation_id = ?", id).ForceDelete().Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.DeleteConversation.Messages")
		}
		if _, err := tx.NewDelete().Model((*model.ReadReceipt)(nil)).Where("conversation_id = ?", id).Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.DeleteConversation.ReadReceipts")
		}
		if _, err := tx.NewDelete().Model((*inviteModel.Invite)(nil)).Where("conversation_id = ?", id).Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.DeleteConversation.Invites")
		}
		if _, err := tx.NewDelete().Model((*model.Participant)(nil)).Where("conversation_id = ?", id).Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.DeleteConversation.Participants")
		}

		res, err := tx.NewDelete().Model((*model.Conversation)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "chatRepo.DeleteConversation.Conversation")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return appErrors.ErrConversationNotFound
		}
		return nil
	})
}

func (r *ChatRepository) TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*model.Conversation)(nil)).
		Set("last_message_at = ?", at).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.TouchLastMessage.Exec")
	}
	return nil
}

func (r *ChatRepository) GetParticipant(ctx context.Context, conversationID uuid.UUID, did string) (*model.Participant, error) {
	p := new(model.Participant)
	err := r.db.NewSelect().
		Model(p).
		Where("conversation_id = ? AND did = ?", conversationID, did).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrParticipantNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetParticipant.Scan")
	}
	return p, nil
}

func (r *ChatRepository) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]model.Participant, error) {
	var parts []model.Participant
	err := r.db.NewSelect().
		Model(&parts).
		Where("conversation_id = ?", conversationID).
		Order("joined_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListParticipants.Scan")
	}
	return parts, nil
}

func (r *ChatRepository) CountParticipants(ctx context.Context, conversationID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*model.Participant)(nil)).
		Where("conversation_id = ?", conversationID).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "chatRepo.CountParticipants")
	}
	return count, nil
}

func (r *ChatRepository) AddParticipant(ctx context.Context, p *model.Participant, sysMsg *model.Message) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(p).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.AddParticipant.Insert")
		}
		if sysMsg != nil {
			if _, err := tx.NewInsert().Model(sysMsg).Returning("*").Exec(ctx); err != nil {
				return errors.Wrap(err, "chatRepo.AddParticipant.InsertSystemMessage")
			}
		}
		return nil
	})
	if integrityViolation(err) {
		return appErrors.ErrAlreadyParticipant
	}
	return err
}

func (r *ChatRepository) SetParticipantRole(ctx context.Context, conversationID uuid.UUID, did string, role model.Role, sysMsg *model.Message) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*model.Participant)(nil)).
			Set("role = ?", role).
			Where("conversation_id = ? AND did = ?", conversationID, did).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "chatRepo.SetParticipantRole.Update")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return appErrors.ErrParticipantNotFound
		}
		if sysMsg != nil {
			if _, err := tx.NewInsert().Model(sysMsg).Returning("*").Exec(ctx); err != nil {
				return errors.Wrap(err, "chatRepo.SetParticipantRole.InsertSystemMessage")
			}
		}
		return nil
	})
}

func (r *ChatRepository) RemoveParticipant(ctx context.Context, conversationID uuid.UUID, did string, sysMsg *model.Message) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*model.Participant)(nil)).
			Where("conversation_id = ? AND did = ?", conversationID, did).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "chatRepo.RemoveParticipant.Delete")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return appErrors.ErrParticipantNotFound
		}
		if sysMsg != nil {
			if _, err := tx.NewInsert().Model(sysMsg).Returning("*").Exec(ctx); err != nil {
				return errors.Wrap(err, "chatRepo.RemoveParticipant.InsertSystemMessage")
			}
		}
		return nil
	})
}

func (r *ChatRepository) MarkRead(ctx context.Context, receipt *model.ReadReceipt) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(receipt).
			On("CONFLICT (conversation_id, did) DO UPDATE").
			Set("message_id = EXCLUDED.message_id").
			Set("read_at = EXCLUDED.read_at").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "chatRepo.MarkRead.Upsert")
		}

		_, err = tx.NewUpdate().
			Model((*model.Participant)(nil)).
			Set("last_read_at = ?", receipt.ReadAt).
			Where("conversation_id = ? AND did = ?", receipt.ConversationID, receipt.DID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "chatRepo.MarkRead.UpdateParticipant")
		}
		return nil
	})
}

func (r *ChatRepository) InsertMessage(ctx context.Context, msg *model.Message) error {
	if _, err := r.db.NewInsert().Model(msg).Returning("*").Exec(ctx); err != nil {
		return errors.Wrap(err, "chatRepo.InsertMessage.Insert")
	}
	return nil
}

func (r *ChatRepository) GetMessage(ctx context.Context, conversationID, id uuid.UUID) (*model.Message, error) {
	msg := new(model.Message)
	err := r.db.NewSelect().
		Model(msg).
		Where("conversation_id = ? AND id = ?", conversationID, id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrMessageNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetMessage.Scan")
	}
	return msg, nil
}

func (r *ChatRepository) ListMessagesBefore(ctx context.Context, conversationID uuid.UUID, before *time.Time, limit int) ([]model.Message, error) {
	var msgs []model.Message
	q := r.db.NewSelect().
		Model(&msgs).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListMessagesBefore.Scan")
	}
	return msgs, nil
}

func (r *ChatRepository) SoftDeleteMessage(ctx context.Context, conversationID, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*model.Message)(nil)).
		Where("conversation_id = ? AND id = ?", conversationID, id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.SoftDeleteMessage.Delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.ErrMessageNotFound
	}
	return nil
}
