package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat/model"
)

type ChatRepository interface {
	// Conversation row + initial participants + optional creation system
	// message, inserted in one transaction. A direct-pair unique violation
	// surfaces as ErrDuplicateDirect.
	CreateConversation(ctx context.Context, conv *model.Conversation, parts []model.Participant, sysMsg *model.Message) error
	GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	FindDirectBetween(ctx context.Context, didA, didB string) (*model.Conversation, error)
	ListConversationsFor(ctx context.Context, did string) ([]model.Conversation, error)
	UpdateConversation(ctx context.Context, id uuid.UUID, patch ConversationPatch) error
	DeleteConversation(ctx context.Context, id uuid.UUID) error
	TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error

	GetParticipant(ctx context.Context, conversationID uuid.UUID, did string) (*model.Participant, error)
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]model.Participant, error)
	CountParticipants(ctx context.Context, conversationID uuid.UUID) (int, error)
	// Insert plus system message in one transaction. Duplicate membership
	// surfaces as ErrAlreadyParticipant.
	AddParticipant(ctx context.Context, p *model.Participant, sysMsg *model.Message) error
	SetParticipantRole(ctx context.Context, conversationID uuid.UUID, did string, role model.Role, sysMsg *model.Message) error
	RemoveParticipant(ctx context.Context, conversationID uuid.UUID, did string, sysMsg *model.Message) error
	MarkRead(ctx context.Context, receipt *model.ReadReceipt) error

	InsertMessage(ctx context.Context, msg *model.Message) error
	GetMessage(ctx context.Context, conversationID, id uuid.UUID) (*model.Message, error)
	// Messages strictly before the cursor (all when cursor is nil),
	// created_at descending, soft-deleted rows excluded.
	ListMessagesBefore(ctx context.Context, conversationID uuid.UUID, before *time.Time, limit int) ([]model.Message, error)
	SoftDeleteMessage(ctx context.Context, conversationID, id uuid.UUID) error
}

// ConversationPatch carries the admin-editable metadata fields. Nil means
// "leave unchanged".
type ConversationPatch struct {
	Name        *string
	Description *string
	Avatar      *string
	Visibility  *model.Visibility
	TrustRadius *int
}

func (p ConversationPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Avatar == nil &&
		p.Visibility == nil && p.TrustRadius == nil
}
