package model

import (
	"time"

	"github.com/google/uuid"
)

type ConversationType string

const (
	ConvDirect ConversationType = "direct"
	ConvGroup  ConversationType = "group"
)

func (t ConversationType) Valid() bool {
	return t == ConvDirect || t == ConvGroup
}

type Visibility string

const (
	VisibilityPrivate    Visibility = "private"
	VisibilityTrustBound Visibility = "trust-bound"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityTrustBound
}

type Conversation struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Type ConversationType `bun:",notnull" json:"type"` // immutable after creation

	// Group-only metadata
	Name        string `bun:",nullzero" json:"name,omitempty"`
	Description string `bun:",nullzero" json:"description,omitempty"`
	Avatar      string `bun:",nullzero" json:"avatar,omitempty"`

	Visibility  Visibility `bun:",notnull,default:'private'" json:"visibility"`
	TrustRadius *int       `bun:",nullzero" json:"trustRadius,omitempty"`

	CreatedBy string `bun:",notnull" json:"createdBy"`

	// Canonical unordered pair "least|greatest" of the two dids; set only for
	// direct conversations. The unique index on it serializes concurrent
	// first contact from both sides.
	DirectKey string `bun:",nullzero,unique" json:"-"`

	CreatedAt     time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
	LastMessageAt *time.Time `bun:",nullzero" json:"lastMessageAt,omitempty"`
}

// DirectKey computes the canonical unordered-pair key for a direct
// conversation between two dids.
func DirectKeyFor(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
