package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat/model"
)

type ConversationUsecase interface {
	// Create validates, deduplicates direct conversations against the
	// canonical pair, and inserts conversation + participants + (group only)
	// a creation system message.
	Create(ctx context.Context, requester string, cmd CreateConversationCommand) (*CreateConversationResult, error)

	// Get collapses "not a participant" into NOT_FOUND so non-members cannot
	// probe for a conversation's existence.
	Get(ctx context.Context, requester string, id uuid.UUID) (*ConversationDetailDTO, error)

	List(ctx context.Context, requester string) ([]model.Conversation, error)

	// Update requires admin or above and refreshes updatedAt.
	Update(ctx context.Context, requester string, id uuid.UUID, patch ConversationPatch) (*model.Conversation, error)

	// Delete requires the owner; cascades to participants, messages, invites.
	Delete(ctx context.Context, requester string, id uuid.UUID) error
}

type ParticipantUsecase interface {
	List(ctx context.Context, requester string, conversationID uuid.UUID) ([]model.Participant, error)
	Add(ctx context.Context, requester string, conversationID uuid.UUID, cmd AddParticipantCommand) (*model.Participant, error)
	SetRole(ctx context.Context, requester string, conversationID uuid.UUID, did string, newRole model.Role) error
	Remove(ctx context.Context, requester string, conversationID uuid.UUID, did string) error
	MarkRead(ctx context.Context, requester string, conversationID, messageID uuid.UUID) error
}

type MessageUsecase interface {
	Send(ctx context.Context, requester string, conversationID uuid.UUID, cmd SendMessageCommand) (*model.Message, error)
	ListPage(ctx context.Context, requester string, conversationID uuid.UUID, limit int, before *uuid.UUID) (*MessagePage, error)
	Delete(ctx context.Context, requester string, conversationID, messageID uuid.UUID) error
}
