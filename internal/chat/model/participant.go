package model

import (
	"time"

	"github.com/google/uuid"
)

// Role forms a strict total order of privilege. Rank gives the ordinal;
// comparisons always go through Rank rather than string comparison.
type Role string

const (
	RoleReadonly Role = "readonly"
	RoleMember   Role = "member"
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
)

func (r Role) Rank() int {
	switch r {
	case RoleReadonly:
		return 0
	case RoleMember:
		return 1
	case RoleAdmin:
		return 2
	case RoleOwner:
		return 3
	default:
		return -1
	}
}

func (r Role) Valid() bool { return r.Rank() >= 0 }

// AtLeast reports whether r carries at least the privilege of required.
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank()
}

// Above reports whether r strictly outranks other.
func (r Role) Above(other Role) bool {
	return r.Rank() > other.Rank()
}

type Participant struct {
	ConversationID uuid.UUID     `bun:",pk,type:uuid" json:"conversationId"`
	Conversation   *Conversation `bun:"rel:belongs-to,join:conversation_id=id" json:"-"`

	DID string `bun:",pk" json:"did"`

	Role Role `bun:",notnull,default:'member'" json:"role"`

	JoinedAt   time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"joinedAt"`
	InvitedBy  *string    `bun:",nullzero" json:"invitedBy,omitempty"` // null only for the creator
	LastReadAt *time.Time `bun:",nullzero" json:"lastReadAt,omitempty"`
	Muted      bool       `bun:",default:false" json:"muted"`

	// Dids this participant has vouched for within the conversation.
	// Informational; no trust-graph computation happens here.
	TrustExtendedTo []string `bun:",array,type:text[]" json:"trustExtendedTo,omitempty"`
}
