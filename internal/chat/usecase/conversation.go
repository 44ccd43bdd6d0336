package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/config"
	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/events"
	"github.com/ima-jin/imajin-chat/internal/identity"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

type ConversationUsecase struct {
	repo      chat.ChatRepository
	publisher events.Publisher
	logger    logger.Logger
	config    *config.Config
}

func NewConversationUsecase(repo chat.ChatRepository, publisher events.Publisher, logger logger.Logger, config *config.Config) *ConversationUsecase {
	return &ConversationUsecase{repo: repo, publisher: publisher, logger: logger, config: config}
}

// requireParticipant is the membership gate for conversation-scoped
// operations. Non-members get the same NOT_FOUND a nonexistent id would
// produce, so existence never leaks.
func requireParticipant(ctx context.Context, repo chat.ChatRepository, conversationID uuid.UUID, did string) (*model.Participant, error) {
	p, err := repo.GetParticipant(ctx, conversationID, did)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeNotFound {
			return nil, errors.ErrConversationNotFound
		}
		return nil, err
	}
	return p, nil
}

func (uc *ConversationUsecase) Create(ctx context.Context, requester string, cmd chat.CreateConversationCommand) (*chat.CreateConversationResult, error) {
	if !cmd.Type.Valid() {
		return nil, errors.ErrInvalidConvType
	}
	if err := identity.ValidateDIDs(cmd.ParticipantDIDs...); err != nil {
		return nil, err
	}

	visibility := cmd.Visibility
	if visibility == "" {
		visibility = model.VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, errors.InvalidArg("visibility must be 'private' or 'trust-bound'")
	}

	switch cmd.Type {
	case model.ConvDirect:
		return uc.createDirect(ctx, requester, cmd, visibility)
	default:
		return uc.createGroup(ctx, requester, cmd, visibility)
	}
}

func (uc *ConversationUsecase) createDirect(ctx context.Context, requester string, cmd chat.CreateConversationCommand, visibility model.Visibility) (*chat.CreateConversationResult, error) {
	if len(cmd.ParticipantDIDs) != 1 {
		return nil, errors.ErrDirectNeedsOnePeer
	}
	peer := cmd.ParticipantDIDs[0]
	if peer == requester {
		return nil, errors.InvalidArg("direct conversations require two distinct participants")
	}

	if existing, err := uc.repo.FindDirectBetween(ctx, requester, peer); err == nil {
		return &chat.CreateConversationResult{Conversation: existing, Existing: true}, nil
	} else if errors.CodeOf(err) != errors.CodeNotFound {
		return nil, err
	}

	conv := &model.Conversation{
		Type:        model.ConvDirect,
		Visibility:  visibility,
		TrustRadius: cmd.TrustRadius,
		CreatedBy:   requester,
		DirectKey:   model.DirectKeyFor(requester, peer),
	}
	parts := []model.Participant{
		{DID: requester, Role: model.RoleOwner},
		{DID: peer, Role: model.RoleMember, InvitedBy: &requester},
	}

	err := uc.repo.CreateConversation(ctx, conv, parts, nil)
	if errors.CodeOf(err) == errors.CodeAlreadyExists {
		// Lost the compare-and-create race against the peer's first contact:
		// the unique pair index fired, so the winner's row exists now.
		existing, ferr := uc.repo.FindDirectBetween(ctx, requester, peer)
		if ferr != nil {
			return nil, ferr
		}
		return &chat.CreateConversationResult{Conversation: existing, Existing: true}, nil
	}
	if err != nil {
		uc.logger.Error("failed to create direct conversation", "err", err)
		return nil, errors.Internal("failed to create conversation")
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeConversationCreated,
		ConversationID: conv.ID,
		Actor:          requester,
		Payload:        map[string]string{"type": string(conv.Type)},
	})
	return &chat.CreateConversationResult{Conversation: conv}, nil
}

func (uc *ConversationUsecase) createGroup(ctx context.Context, requester string, cmd chat.CreateConversationCommand, visibility model.Visibility) (*chat.CreateConversationResult, error) {
	if cmd.Name == "" {
		return nil, errors.ErrGroupNameRequired
	}

	conv := &model.Conversation{
		Type:        model.ConvGroup,
		Name:        cmd.Name,
		Description: cmd.Description,
		Visibility:  visibility,
		TrustRadius: cmd.TrustRadius,
		CreatedBy:   requester,
	}

	parts := []model.Participant{{DID: requester, Role: model.RoleOwner}}
	seen := map[string]struct{}{requester: {}}
	for _, did := range cmd.ParticipantDIDs {
		if _, ok := seen[did]; ok {
			continue
		}
		seen[did] = struct{}{}
		parts = append(parts, model.Participant{DID: did, Role: model.RoleMember, InvitedBy: &requester})
	}

	sysMsg := model.NewSystemMessage(uuid.Nil, requester, model.SystemEvent{
		Event:  "conversation_created",
		Actor:  requester,
		Detail: cmd.Name,
	})

	if err := uc.repo.CreateConversation(ctx, conv, parts, sysMsg); err != nil {
		uc.logger.Error("failed to create group conversation", "err", err)
		return nil, errors.Internal("failed to create conversation")
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeConversationCreated,
		ConversationID: conv.ID,
		Actor:          requester,
		Payload:        map[string]string{"type": string(conv.Type), "name": conv.Name},
	})
	return &chat.CreateConversationResult{Conversation: conv}, nil
}

func (uc *ConversationUsecase) Get(ctx context.Context, requester string, id uuid.UUID) (*chat.ConversationDetailDTO, error) {
	p, err := requireParticipant(ctx, uc.repo, id, requester)
	if err != nil {
		return nil, err
	}

	conv, err := uc.repo.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	parts, err := uc.repo.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}

	return &chat.ConversationDetailDTO{
		Conversation: conv,
		Participants: parts,
		OwnRole:      p.Role,
	}, nil
}

func (uc *ConversationUsecase) List(ctx context.Context, requester string) ([]model.Conversation, error) {
	return uc.repo.ListConversationsFor(ctx, requester)
}

func (uc *ConversationUsecase) Update(ctx context.Context, requester string, id uuid.UUID, patch chat.ConversationPatch) (*model.Conversation, error) {
	p, err := requireParticipant(ctx, uc.repo, id, requester)
	if err != nil {
		return nil, err
	}
	if !p.Role.AtLeast(model.RoleAdmin) {
		return nil, errors.ErrInsufficientRole
	}
	if patch.Empty() {
		return nil, errors.InvalidArg("nothing to update")
	}
	if patch.Visibility != nil && !patch.Visibility.Valid() {
		return nil, errors.InvalidArg("visibility must be 'private' or 'trust-bound'")
	}

	conv, err := uc.repo.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.Type == model.ConvDirect && (patch.Name != nil || patch.Description != nil || patch.Avatar != nil) {
		return nil, errors.InvalidArg("direct conversations cannot be renamed")
	}

	if err := uc.repo.UpdateConversation(ctx, id, patch); err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeConversationUpdated,
		ConversationID: id,
		Actor:          requester,
	})
	return uc.repo.GetConversation(ctx, id)
}

func (uc *ConversationUsecase) Delete(ctx context.Context, requester string, id uuid.UUID) error {
	p, err := requireParticipant(ctx, uc.repo, id, requester)
	if err != nil {
		return err
	}
	if p.Role != model.RoleOwner {
		return errors.ErrInsufficientRole
	}
	if err := uc.repo.DeleteConversation(ctx, id); err != nil {
		return err
	}

	uc.publisher.Publish(ctx, events.Event{
		Type:           events.TypeConversationDeleted,
		ConversationID: id,
		Actor:          requester,
	})
	return nil
}
