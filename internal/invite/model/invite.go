package model

import (
	"time"

	"github.com/google/uuid"
)

// State is derived from the row on every access, never cached.
type State string

const (
	StateActive    State = "active"
	StateRevoked   State = "revoked"
	StateExpired   State = "expired"
	StateExhausted State = "exhausted"
)

type Invite struct {
	ID             uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID `bun:",notnull,type:uuid" json:"conversationId"`

	CreatedBy string  `bun:",notnull" json:"createdBy"`
	ForDID    *string `bun:",nullzero" json:"forDid,omitempty"` // binds redemption to one identity

	MaxUses   *int `bun:",nullzero" json:"maxUses,omitempty"` // nil = unlimited
	UsedCount int  `bun:",notnull,default:0" json:"usedCount"`

	ExpiresAt *time.Time `bun:",nullzero" json:"expiresAt,omitempty"`
	RevokedAt *time.Time `bun:",nullzero" json:"revokedAt,omitempty"`
	CreatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// StateAt evaluates the invite state machine. Revocation wins over expiry,
// expiry over exhaustion.
func (i *Invite) StateAt(now time.Time) State {
	if i.RevokedAt != nil {
		return StateRevoked
	}
	if i.ExpiresAt != nil && !now.Before(*i.ExpiresAt) {
		return StateExpired
	}
	if i.MaxUses != nil && i.UsedCount >= *i.MaxUses {
		return StateExhausted
	}
	return StateActive
}
