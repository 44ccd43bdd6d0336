package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/events"
	"github.com/ima-jin/imajin-chat/internal/identity"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

type ParticipantUsecase struct {
	repo      chat.ChatRepository
	publisher events.Publisher
	logger    logger.Logger
}

func NewParticipantUsecase(repo chat.ChatRepository, publisher events.Publisher, logger logger.Logger) *ParticipantUsecase {
	return &ParticipantUsecase{repo: repo, publisher: publisher, logger: logger}
}

func (uc *ParticipantUsecase) List(ctx context.Context, requester string, conversationID uuid.UUID) ([]model.Participant, error) {
	if _, err := requireParticipant(ctx, uc.repo, conversationID, requester); err != nil {
		return nil, err
	}
	return uc.repo.ListParticipants(ctx, conversationID)
}

func (uc *ParticipantUsecase) Add(ctx context.Context, requester string, conversationID uuid.UUID, cmd chat.AddParticipantCommand) (*model.Participant, error) {
	actor, err := requireParticipant(ctx, uc.repo, conversationID, requester)
	if err != nil {
		return nil, err
	}
	if !actor.Role.AtLeast(model.RoleAdmin) {
		return nil, errors.ErrInsufficientRole
	}
	if err := identity.ValidateDIDs(cmd.DID); err != nil {
		return nil, err
	}

	conv, err := uc.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.Type == model.ConvDirect {
		return nil, errors.Forbidden("direct conversations cannot gain members")
	}

	role := cmd.Role
	if role == "" {
		role = model.RoleMember
	}
	if !role.Valid() {
		return nil, errors.InvalidArg("invalid role")
	}
	// Ownership is never granted through add; transfer is not automated.
	if role == model.RoleOwner {
		return nil, errors.Forbidden("cannot add a participant as owner")
	}
	// A non-owner cannot create a peer or a superior.
	if actor.Role != model.RoleOwner && role.AtLeast(actor.Role) {
		return nil, errors.ErrCannotActOnPeer
	}

	p := &model.Participant{
		ConversationID: conversationID,
		DID:            cmd.DID,
		Role:           role,
		InvitedBy:      &requester,
	}
	sysMsg := model.NewSystemMessage(conversationID, requester, model.SystemEvent{
		Event:  "participant_added",
		Actor:  requester,
		Target: cmd.DID,
		Detail: string(role),
	})

	if err := uc.repo.AddParticipant(ctx, p, sysMsg); err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeParticipantAdded,
		ConversationID: conversationID,
		Actor:          requester,
		Payload:        p,
	})
	return p, nil
}

func (uc *ParticipantUsecase) SetRole(ctx context.Context, requester string, conversationID uuid.UUID, did string, newRole model.Role) error {
	actor, err := requireParticipant(ctx, uc.repo, conversationID, requester)
	if err != nil {
		return err
	}
	if actor.Role != model.RoleOwner {
		return errors.ErrInsufficientRole
	}
	if did == requester {
		return errors.ErrCannotChangeOwnRole
	}
	if !newRole.Valid() {
		return errors.InvalidArg("invalid role")
	}
	if newRole == model.RoleOwner {
		return errors.Forbidden("ownership transfer is not supported")
	}

	target, err := uc.repo.GetParticipant(ctx, conversationID, did)
	if err != nil {
		return err
	}
	if target.Role == newRole {
		return nil
	}

	sysMsg := model.NewSystemMessage(conversationID, requester, model.SystemEvent{
		Event:  "role_changed",
		Actor:  requester,
		Target: did,
		Detail: string(target.Role) + " -> " + string(newRole),
	})
	if err := uc.repo.SetParticipantRole(ctx, conversationID, did, newRole, sysMsg); err != nil {
		return err
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeRoleChanged,
		ConversationID: conversationID,
		Actor:          requester,
		Payload:        map[string]string{"did": did, "role": string(newRole)},
	})
	return nil
}

func (uc *ParticipantUsecase) Remove(ctx context.Context, requester string, conversationID uuid.UUID, did string) error {
	actor, err := requireParticipant(ctx, uc.repo, conversationID, requester)
	if err != nil {
		return err
	}

	conv, err := uc.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	// Membership of a direct conversation is fixed at creation; a degenerate
	// one-participant row would still hold the pair's direct_key forever.
	// Deleting the conversation is the only way out.
	if conv.Type == model.ConvDirect {
		return errors.Forbidden("direct conversations cannot lose members")
	}

	var sysMsg *model.Message
	if did == requester {
		if actor.Role == model.RoleOwner {
			return errors.ErrOwnerCannotLeave
		}
		sysMsg = model.NewSystemMessage(conversationID, requester, model.SystemEvent{
			Event: "participant_left",
			Actor: requester,
		})
	} else {
		if !actor.Role.AtLeast(model.RoleAdmin) {
			return errors.ErrInsufficientRole
		}
		target, err := uc.repo.GetParticipant(ctx, conversationID, did)
		if err != nil {
			return err
		}
		if !actor.Role.Above(target.Role) {
			return errors.ErrCannotActOnPeer
		}
		sysMsg = model.NewSystemMessage(conversationID, requester, model.SystemEvent{
			Event:  "participant_removed",
			Actor:  requester,
			Target: did,
		})
	}

	if err := uc.repo.RemoveParticipant(ctx, conversationID, did, sysMsg); err != nil {
		return err
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeParticipantRemoved,
		ConversationID: conversationID,
		Actor:          requester,
		Payload:        map[string]string{"did": did},
	})
	return nil
}

func (uc *ParticipantUsecase) MarkRead(ctx context.Context, requester string, conversationID, messageID uuid.UUID) error {
	if _, err := requireParticipant(ctx, uc.repo, conversationID, requester); err != nil {
		return err
	}
	if _, err := uc.repo.GetMessage(ctx, conversationID, messageID); err != nil {
		return err
	}
	return uc.repo.MarkRead(ctx, &model.ReadReceipt{
		ConversationID: conversationID,
		DID:            requester,
		MessageID:      messageID,
		ReadAt:         time.Now(),
	})
}
