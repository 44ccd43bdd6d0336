package invite

import (
	"time"

	"github.com/google/uuid"

	chatModel "github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/invite/model"
)

type CreateInviteCommand struct {
	ConversationID uuid.UUID
	ForDID         *string
	MaxUses        *int
	ExpiresInHours *int
}

// InviteDTO is a created invite plus the shareable redemption locator.
type InviteDTO struct {
	Invite  *model.Invite `json:"invite"`
	Locator string        `json:"locator"`
}

// PreviewDTO is what an anonymous holder of an invite link sees before
// redeeming: invite metadata and a summary of the target conversation.
type PreviewDTO struct {
	InviteID         uuid.UUID                  `json:"inviteId"`
	ConversationID   uuid.UUID                  `json:"conversationId"`
	ConversationName string                     `json:"conversationName,omitempty"`
	ConversationType chatModel.ConversationType `json:"conversationType"`
	ParticipantCount int                        `json:"participantCount"`
	CreatedBy        string                     `json:"createdBy"`
	ExpiresAt        *time.Time                 `json:"expiresAt,omitempty"`
}

type RedeemResult struct {
	ConversationID uuid.UUID `json:"conversationId"`
	// True when the consumer was a participant already; idempotent success,
	// usedCount untouched.
	AlreadyMember bool `json:"alreadyMember"`
}
