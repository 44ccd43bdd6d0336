package model

import (
	"time"

	"github.com/google/uuid"
)

type ReadReceipt struct {
	ConversationID uuid.UUID `bun:",pk,type:uuid" json:"conversationId"`
	DID            string    `bun:",pk" json:"did"`

	MessageID uuid.UUID `bun:",notnull,type:uuid" json:"messageId"`
	ReadAt    time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"readAt"`
}
