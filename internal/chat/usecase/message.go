package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/events"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

type MessageUsecase struct {
	repo      chat.ChatRepository
	publisher events.Publisher
	logger    logger.Logger
}

func NewMessageUsecase(repo chat.ChatRepository, publisher events.Publisher, logger logger.Logger) *MessageUsecase {
	return &MessageUsecase{repo: repo, publisher: publisher, logger: logger}
}

func (uc *MessageUsecase) Send(ctx context.Context, requester string, conversationID uuid.UUID, cmd chat.SendMessageCommand) (*model.Message, error) {
	p, err := requireParticipant(ctx, uc.repo, conversationID, requester)
	if err != nil {
		return nil, err
	}
	if !p.Role.Above(model.RoleReadonly) {
		return nil, errors.ErrReadonlyParticipant
	}

	contentType := cmd.ContentType
	if contentType == "" {
		contentType = model.ContentText
	}
	if !contentType.Valid() {
		return nil, errors.InvalidArg("invalid content type")
	}
	if contentType.ServerGenerated() {
		return nil, errors.ErrSystemTypeReserved
	}
	if len(cmd.Ciphertext) == 0 {
		return nil, errors.InvalidArg("message content is required")
	}

	if cmd.ReplyTo != nil {
		if _, err := uc.repo.GetMessage(ctx, conversationID, *cmd.ReplyTo); err != nil {
			if errors.CodeOf(err) == errors.CodeNotFound {
				return nil, errors.ErrReplyWrongConv
			}
			return nil, err
		}
	}

	msg := &model.Message{
		ConversationID: conversationID,
		FromDID:        requester,
		ContentType:    contentType,
		Ciphertext:     cmd.Ciphertext,
		Nonce:          cmd.Nonce,
		ReplyTo:        cmd.ReplyTo,
	}
	if err := uc.repo.InsertMessage(ctx, msg); err != nil {
		uc.logger.Error("failed to insert message", "err", err)
		return nil, errors.Internal("failed to send message")
	}

	// Recency update may lag the insert; a failed touch never fails the send.
	if err := uc.repo.TouchLastMessage(ctx, conversationID, msg.CreatedAt); err != nil {
		uc.logger.Warn("failed to touch conversation recency", "conversation_id", conversationID, "err", err)
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeMessageSent,
		ConversationID: conversationID,
		Actor:          requester,
		Payload:        msg,
	})
	return msg, nil
}

func (uc *MessageUsecase) ListPage(ctx context.Context, requester string, conversationID uuid.UUID, limit int, before *uuid.UUID) (*chat.MessagePage, error) {
	if _, err := requireParticipant(ctx, uc.repo, conversationID, requester); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	// The cursor is the creation time of the named message. An unresolvable
	// cursor falls back to an unbounded fetch.
	var cursor *time.Time
	if before != nil {
		if anchor, err := uc.repo.GetMessage(ctx, conversationID, *before); err == nil {
			cursor = &anchor.CreatedAt
		} else if errors.CodeOf(err) != errors.CodeNotFound {
			return nil, err
		}
	}

	msgs, err := uc.repo.ListMessagesBefore(ctx, conversationID, cursor, limit)
	if err != nil {
		return nil, err
	}

	// Fetch is newest-first; callers always receive chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return &chat.MessagePage{
		Messages: msgs,
		HasMore:  len(msgs) == limit,
	}, nil
}

func (uc *MessageUsecase) Delete(ctx context.Context, requester string, conversationID, messageID uuid.UUID) error {
	p, err := requireParticipant(ctx, uc.repo, conversationID, requester)
	if err != nil {
		return err
	}

	msg, err := uc.repo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		return err
	}
	if msg.FromDID != requester && !p.Role.AtLeast(model.RoleAdmin) {
		return errors.Forbidden("only the sender or an admin can delete a message")
	}

	if err := uc.repo.SoftDeleteMessage(ctx, conversationID, messageID); err != nil {
		return err
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeMessageDeleted,
		ConversationID: conversationID,
		Actor:          requester,
		Payload:        map[string]string{"messageId": messageID.String()},
	})
	return nil
}
