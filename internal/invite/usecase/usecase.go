package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/config"
	"github.com/ima-jin/imajin-chat/internal/chat"
	chatModel "github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/events"
	"github.com/ima-jin/imajin-chat/internal/identity"
	"github.com/ima-jin/imajin-chat/internal/invite"
	"github.com/ima-jin/imajin-chat/internal/invite/model"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

type InviteUsecase struct {
	repo      invite.InviteRepository
	chatRepo  chat.ChatRepository
	publisher events.Publisher
	logger    logger.Logger
	config    *config.Config
}

func NewInviteUsecase(repo invite.InviteRepository, chatRepo chat.ChatRepository, publisher events.Publisher, logger logger.Logger, config *config.Config) *InviteUsecase {
	return &InviteUsecase{repo: repo, chatRepo: chatRepo, publisher: publisher, logger: logger, config: config}
}

// participantWithRole gates invite operations on conversation membership.
// Like every other conversation-scoped check, a non-member sees NOT_FOUND.
func (uc *InviteUsecase) participantWithRole(ctx context.Context, conversationID uuid.UUID, did string, required chatModel.Role) (*chatModel.Participant, error) {
	p, err := uc.chatRepo.GetParticipant(ctx, conversationID, did)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeNotFound {
			return nil, errors.ErrConversationNotFound
		}
		return nil, err
	}
	if !p.Role.AtLeast(required) {
		return nil, errors.ErrInsufficientRole
	}
	return p, nil
}

func (uc *InviteUsecase) Create(ctx context.Context, requester string, cmd invite.CreateInviteCommand) (*invite.InviteDTO, error) {
	if _, err := uc.participantWithRole(ctx, cmd.ConversationID, requester, chatModel.RoleAdmin); err != nil {
		return nil, err
	}

	if cmd.ForDID != nil {
		if err := identity.ValidateDIDs(*cmd.ForDID); err != nil {
			return nil, err
		}
	}
	if cmd.MaxUses != nil && *cmd.MaxUses < 1 {
		return nil, errors.InvalidArg("maxUses must be at least 1")
	}

	hours := cmd.ExpiresInHours
	if hours == nil && uc.config.Invites.DefaultExpiryHours > 0 {
		h := uc.config.Invites.DefaultExpiryHours
		hours = &h
	}
	// Absolute expiry is fixed now; it is never recomputed later.
	var expiresAt *time.Time
	if hours != nil {
		if *hours < 0 {
			return nil, errors.InvalidArg("expiresInHours cannot be negative")
		}
		t := time.Now().Add(time.Duration(*hours) * time.Hour)
		expiresAt = &t
	}

	inv := &model.Invite{
		ConversationID: cmd.ConversationID,
		CreatedBy:      requester,
		ForDID:         cmd.ForDID,
		MaxUses:        cmd.MaxUses,
		ExpiresAt:      expiresAt,
	}
	if err := uc.repo.CreateInvite(ctx, inv); err != nil {
		uc.logger.Error("failed to create invite", "err", err)
		return nil, errors.Internal("failed to create invite")
	}

	return &invite.InviteDTO{Invite: inv, Locator: "/invites/" + inv.ID.String()}, nil
}

func (uc *InviteUsecase) Preview(ctx context.Context, inviteID uuid.UUID) (*invite.PreviewDTO, error) {
	inv, err := uc.repo.GetInvite(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if err := terminalError(inv); err != nil {
		return nil, err
	}

	conv, err := uc.chatRepo.GetConversation(ctx, inv.ConversationID)
	if err != nil {
		return nil, err
	}
	count, err := uc.chatRepo.CountParticipants(ctx, inv.ConversationID)
	if err != nil {
		return nil, err
	}

	return &invite.PreviewDTO{
		InviteID:         inv.ID,
		ConversationID:   conv.ID,
		ConversationName: conv.Name,
		ConversationType: conv.Type,
		ParticipantCount: count,
		CreatedBy:        inv.CreatedBy,
		ExpiresAt:        inv.ExpiresAt,
	}, nil
}

func terminalError(inv *model.Invite) error {
	switch inv.StateAt(time.Now()) {
	case model.StateRevoked:
		return errors.ErrInviteRevoked
	case model.StateExpired:
		return errors.ErrInviteExpired
	case model.StateExhausted:
		return errors.ErrInviteExhausted
	default:
		return nil
	}
}

func (uc *InviteUsecase) Redeem(ctx context.Context, consumer string, inviteID uuid.UUID) (*invite.RedeemResult, error) {
	inv, err := uc.repo.GetInvite(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if err := terminalError(inv); err != nil {
		return nil, err
	}
	if inv.ForDID != nil && *inv.ForDID != consumer {
		return nil, errors.ErrInviteNotForYou
	}

	// Existing members redeem idempotently without spending a use.
	if _, err := uc.chatRepo.GetParticipant(ctx, inv.ConversationID, consumer); err == nil {
		return &invite.RedeemResult{ConversationID: inv.ConversationID, AlreadyMember: true}, nil
	} else if errors.CodeOf(err) != errors.CodeNotFound {
		return nil, err
	}

	// Membership attribution points at whoever issued the invite, not the
	// redeemer.
	p := &chatModel.Participant{
		ConversationID: inv.ConversationID,
		DID:            consumer,
		Role:           chatModel.RoleMember,
		InvitedBy:      &inv.CreatedBy,
	}
	sysMsg := chatModel.NewSystemMessage(inv.ConversationID, consumer, chatModel.SystemEvent{
		Event:  "invite_redeemed",
		Actor:  consumer,
		Detail: inv.ID.String(),
	})

	err = uc.repo.Redeem(ctx, inviteID, p, sysMsg)
	if errors.CodeOf(err) == errors.CodeAlreadyExists {
		return &invite.RedeemResult{ConversationID: inv.ConversationID, AlreadyMember: true}, nil
	}
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeInviteRedeemed,
		ConversationID: inv.ConversationID,
		Actor:          consumer,
	})
	return &invite.RedeemResult{ConversationID: inv.ConversationID}, nil
}

func (uc *InviteUsecase) Revoke(ctx context.Context, requester string, inviteID uuid.UUID) error {
	inv, err := uc.repo.GetInvite(ctx, inviteID)
	if err != nil {
		return err
	}
	if inv.RevokedAt != nil {
		return errors.ErrInviteRevoked
	}

	if inv.CreatedBy != requester {
		if _, err := uc.participantWithRole(ctx, inv.ConversationID, requester, chatModel.RoleAdmin); err != nil {
			return err
		}
	}

	return uc.repo.Revoke(ctx, inviteID, time.Now())
}

func (uc *InviteUsecase) List(ctx context.Context, requester string, conversationID uuid.UUID) ([]model.Invite, error) {
	if _, err := uc.participantWithRole(ctx, conversationID, requester, chatModel.RoleAdmin); err != nil {
		return nil, err
	}
	return uc.repo.ListActive(ctx, conversationID)
}
