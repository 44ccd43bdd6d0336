package invite

import (
	"context"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/invite/model"
)

type InviteUsecase interface {
	// Create requires admin or above in the target conversation. The
	// relative expiry is resolved to an absolute instant at creation time.
	Create(ctx context.Context, requester string, cmd CreateInviteCommand) (*InviteDTO, error)

	// Preview is public: no consumer identity required. Terminal invites
	// report GONE.
	Preview(ctx context.Context, inviteID uuid.UUID) (*PreviewDTO, error)

	Redeem(ctx context.Context, consumer string, inviteID uuid.UUID) (*RedeemResult, error)

	// Revoke is allowed for the invite's creator or any admin-or-above
	// participant. The row is kept for audit.
	Revoke(ctx context.Context, requester string, inviteID uuid.UUID) error

	List(ctx context.Context, requester string, conversationID uuid.UUID) ([]model.Invite, error)
}
