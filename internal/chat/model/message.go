package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentText          ContentType = "text"
	ContentSystem        ContentType = "system"
	ContentInvite        ContentType = "invite"
	ContentTrustExtended ContentType = "trust-extended"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentText, ContentSystem, ContentInvite, ContentTrustExtended:
		return true
	}
	return false
}

// ServerGenerated reports whether this content type may only be produced by
// the server itself, never injected by a client.
func (c ContentType) ServerGenerated() bool {
	return c == ContentSystem
}

type Message struct {
	ID             uuid.UUID     `bun:",pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID     `bun:",notnull,type:uuid" json:"conversationId"`
	Conversation   *Conversation `bun:"rel:belongs-to,join:conversation_id=id" json:"-"`

	FromDID string `bun:",notnull" json:"fromDid"`

	ContentType ContentType `bun:",notnull,default:'text'" json:"contentType"`

	// Encrypted envelope, opaque to the server. Nil for system messages.
	Ciphertext []byte `bun:",nullzero" json:"ciphertext,omitempty"`
	Nonce      []byte `bun:",nullzero" json:"nonce,omitempty"`

	// Structured payload for server-generated messages.
	SystemBody json.RawMessage `bun:",nullzero,type:jsonb" json:"systemBody,omitempty"`

	ReplyTo *uuid.UUID `bun:",nullzero,type:uuid" json:"replyTo,omitempty"`

	CreatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	EditedAt  *time.Time `bun:",nullzero" json:"editedAt,omitempty"`
	DeletedAt *time.Time `bun:",soft_delete,nullzero" json:"-"`
}

// SystemEvent is the structured body of a server-generated message recording
// a membership, role or lifecycle event.
type SystemEvent struct {
	Event  string `json:"event"`
	Actor  string `json:"actor,omitempty"`
	Target string `json:"target,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// NewSystemMessage builds a system message for a lifecycle event. Callers
// persist it through the message repository, usually inside the same
// transaction as the event it records.
func NewSystemMessage(conversationID uuid.UUID, actor string, ev SystemEvent) *Message {
	body, _ := json.Marshal(ev)
	return &Message{
		ConversationID: conversationID,
		FromDID:        actor,
		ContentType:    ContentSystem,
		SystemBody:     body,
	}
}
