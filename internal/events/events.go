package events

import (
	"context"

	"github.com/google/uuid"
)

// Event is what the core hands to the real-time delivery layer. Transport
// (pubsub, websocket fan-out, typing indicators) lives outside this module;
// the core only notifies.
type Event struct {
	Type           string    `json:"type"`
	ConversationID uuid.UUID `json:"conversationId"`
	Actor          string    `json:"actor,omitempty"`
	Payload        any       `json:"payload,omitempty"`
}

const (
	TypeConversationCreated = "conversation.created"
	TypeConversationUpdated = "conversation.updated"
	TypeConversationDeleted = "conversation.deleted"

	TypeMessageSent        = "message.sent"
	TypeMessageDeleted     = "message.deleted"
	TypeParticipantAdded   = "participant.added"
	TypeParticipantRemoved = "participant.removed"
	TypeRoleChanged        = "participant.role_changed"
	TypeInviteRedeemed     = "invite.redeemed"
)

type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Noop is the default publisher when no transport is attached.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}
