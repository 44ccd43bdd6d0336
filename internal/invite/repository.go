package invite

import (
	"context"
	"time"

	"github.com/google/uuid"

	chatModel "github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/invite/model"
)

type InviteRepository interface {
	CreateInvite(ctx context.Context, inv *model.Invite) error
	GetInvite(ctx context.Context, id uuid.UUID) (*model.Invite, error)
	// Non-revoked invites only; expired and exhausted rows stay listed until
	// revoked so "inactive" is distinguishable from "deleted".
	ListActive(ctx context.Context, conversationID uuid.UUID) ([]model.Invite, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error

	// Redeem applies the guarded usedCount increment, the membership insert
	// and the system message as one transaction. The increment is conditional
	// on the invite still being active, so concurrent redemptions cannot
	// exceed maxUses.
	Redeem(ctx context.Context, inviteID uuid.UUID, p *chatModel.Participant, sysMsg *chatModel.Message) error
}
