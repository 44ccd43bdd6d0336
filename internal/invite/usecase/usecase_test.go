package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ima-jin/imajin-chat/config"
	chatMocks "github.com/ima-jin/imajin-chat/internal/chat/mocks"
	chatModel "github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/events"
	"github.com/ima-jin/imajin-chat/internal/invite"
	"github.com/ima-jin/imajin-chat/internal/invite/mocks"
	"github.com/ima-jin/imajin-chat/internal/invite/model"
	appErrors "github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

const (
	didAdmin    = "did:key:z6MkAdmin"
	didMember   = "did:key:z6MkMember"
	didStranger = "did:key:z6MkStranger"
)

func newInviteUsecase(t *testing.T, cfg config.Config) (*InviteUsecase, *mocks.MockInviteRepository, *chatMocks.MockChatRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockInviteRepository(ctrl)
	mockChatRepo := chatMocks.NewMockChatRepository(ctrl)

	log, _ := logger.NewLogger(&cfg)
	uc := NewInviteUsecase(mockRepo, mockChatRepo, events.Noop{}, *log, &cfg)
	return uc, mockRepo, mockChatRepo
}

func adminParticipant(convID uuid.UUID, did string) *chatModel.Participant {
	return &chatModel.Participant{ConversationID: convID, DID: did, Role: chatModel.RoleAdmin}
}

func TestInviteUsecase_Create(t *testing.T) {
	convID := uuid.New()

	t.Run("happy path - default expiry comes from config", func(t *testing.T) {
		cfg := config.Config{}
		cfg.Invites.DefaultExpiryHours = 48
		uc, mockRepo, mockChatRepo := newInviteUsecase(t, cfg)

		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didAdmin).
			Return(adminParticipant(convID, didAdmin), nil)
		mockRepo.EXPECT().
			CreateInvite(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *model.Invite) error {
				require.NotNil(t, inv.ExpiresAt)
				assert.WithinDuration(t, time.Now().Add(48*time.Hour), *inv.ExpiresAt, time.Minute)
				inv.ID = uuid.New()
				return nil
			})

		dto, err := uc.Create(context.Background(), didAdmin, invite.CreateInviteCommand{ConversationID: convID})
		require.NoError(t, err)
		assert.Equal(t, "/invites/"+dto.Invite.ID.String(), dto.Locator)
	})

	t.Run("explicit zero hours makes an already-expired invite", func(t *testing.T) {
		uc, mockRepo, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didAdmin).
			Return(adminParticipant(convID, didAdmin), nil)
		mockRepo.EXPECT().
			CreateInvite(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *model.Invite) error {
				require.NotNil(t, inv.ExpiresAt)
				assert.Equal(t, model.StateExpired, inv.StateAt(time.Now().Add(time.Second)))
				return nil
			})

		zero := 0
		_, err := uc.Create(context.Background(), didAdmin, invite.CreateInviteCommand{
			ConversationID: convID,
			ExpiresInHours: &zero,
		})
		require.NoError(t, err)
	})

	t.Run("sad path - negative expiry", func(t *testing.T) {
		uc, _, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didAdmin).
			Return(adminParticipant(convID, didAdmin), nil)

		neg := -1
		_, err := uc.Create(context.Background(), didAdmin, invite.CreateInviteCommand{
			ConversationID: convID,
			ExpiresInHours: &neg,
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("sad path - zero max uses", func(t *testing.T) {
		uc, _, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didAdmin).
			Return(adminParticipant(convID, didAdmin), nil)

		zero := 0
		_, err := uc.Create(context.Background(), didAdmin, invite.CreateInviteCommand{
			ConversationID: convID,
			MaxUses:        &zero,
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("sad path - member cannot issue invites", func(t *testing.T) {
		uc, _, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didMember).
			Return(&chatModel.Participant{Role: chatModel.RoleMember}, nil)

		_, err := uc.Create(context.Background(), didMember, invite.CreateInviteCommand{ConversationID: convID})
		assert.Equal(t, appErrors.ErrInsufficientRole, err)
	})

	t.Run("sad path - outsider sees not found", func(t *testing.T) {
		uc, _, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didStranger).
			Return(nil, appErrors.ErrParticipantNotFound)

		_, err := uc.Create(context.Background(), didStranger, invite.CreateInviteCommand{ConversationID: convID})
		assert.Equal(t, appErrors.ErrConversationNotFound, err)
	})
}

func TestInviteUsecase_Preview(t *testing.T) {
	convID := uuid.New()
	inviteID := uuid.New()
	future := time.Now().Add(time.Hour)

	t.Run("happy path - anonymous summary", func(t *testing.T) {
		uc, mockRepo, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(&model.Invite{
			ID:             inviteID,
			ConversationID: convID,
			CreatedBy:      didAdmin,
			ExpiresAt:      &future,
		}, nil)
		mockChatRepo.EXPECT().GetConversation(gomock.Any(), convID).
			Return(&chatModel.Conversation{ID: convID, Type: chatModel.ConvGroup, Name: "planning"}, nil)
		mockChatRepo.EXPECT().CountParticipants(gomock.Any(), convID).Return(3, nil)

		dto, err := uc.Preview(context.Background(), inviteID)
		require.NoError(t, err)
		assert.Equal(t, "planning", dto.ConversationName)
		assert.Equal(t, 3, dto.ParticipantCount)
		assert.Equal(t, didAdmin, dto.CreatedBy)
	})

	t.Run("sad path - expired invite previews as gone", func(t *testing.T) {
		uc, mockRepo, _ := newInviteUsecase(t, config.Config{})

		past := time.Now().Add(-time.Hour)
		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(&model.Invite{
			ID:             inviteID,
			ConversationID: convID,
			ExpiresAt:      &past,
		}, nil)

		_, err := uc.Preview(context.Background(), inviteID)
		assert.Equal(t, appErrors.ErrInviteExpired, err)
	})
}

func TestInviteUsecase_Redeem(t *testing.T) {
	convID := uuid.New()
	inviteID := uuid.New()

	activeInvite := func() *model.Invite {
		return &model.Invite{
			ID:             inviteID,
			ConversationID: convID,
			CreatedBy:      didAdmin,
		}
	}

	t.Run("happy path - joins as member attributed to the issuer", func(t *testing.T) {
		uc, mockRepo, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(activeInvite(), nil)
		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didStranger).
			Return(nil, appErrors.ErrParticipantNotFound)
		mockRepo.EXPECT().
			Redeem(gomock.Any(), inviteID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, p *chatModel.Participant, sysMsg *chatModel.Message) error {
				assert.Equal(t, didStranger, p.DID)
				assert.Equal(t, chatModel.RoleMember, p.Role)
				require.NotNil(t, p.InvitedBy)
				assert.Equal(t, didAdmin, *p.InvitedBy)
				require.NotNil(t, sysMsg)
				return nil
			})

		res, err := uc.Redeem(context.Background(), didStranger, inviteID)
		require.NoError(t, err)
		assert.Equal(t, convID, res.ConversationID)
		assert.False(t, res.AlreadyMember)
	})

	t.Run("existing member redeems idempotently", func(t *testing.T) {
		uc, mockRepo, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(activeInvite(), nil)
		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didMember).
			Return(&chatModel.Participant{ConversationID: convID, DID: didMember, Role: chatModel.RoleMember}, nil)

		res, err := uc.Redeem(context.Background(), didMember, inviteID)
		require.NoError(t, err)
		assert.True(t, res.AlreadyMember)
	})

	t.Run("concurrent join surfaces as already member", func(t *testing.T) {
		uc, mockRepo, mockChatRepo := newInviteUsecase(t, config.Config{})

		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(activeInvite(), nil)
		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didStranger).
			Return(nil, appErrors.ErrParticipantNotFound)
		mockRepo.EXPECT().
			Redeem(gomock.Any(), inviteID, gomock.Any(), gomock.Any()).
			Return(appErrors.ErrAlreadyParticipant)

		res, err := uc.Redeem(context.Background(), didStranger, inviteID)
		require.NoError(t, err)
		assert.True(t, res.AlreadyMember)
	})

	t.Run("sad path - bound invite, wrong identity", func(t *testing.T) {
		uc, mockRepo, _ := newInviteUsecase(t, config.Config{})

		inv := activeInvite()
		forDID := didMember
		inv.ForDID = &forDID
		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(inv, nil)

		_, err := uc.Redeem(context.Background(), didStranger, inviteID)
		assert.Equal(t, appErrors.ErrInviteNotForYou, err)
	})

	t.Run("sad path - revoked invite", func(t *testing.T) {
		uc, mockRepo, _ := newInviteUsecase(t, config.Config{})

		inv := activeInvite()
		now := time.Now()
		inv.RevokedAt = &now
		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(inv, nil)

		_, err := uc.Redeem(context.Background(), didStranger, inviteID)
		assert.Equal(t, appErrors.ErrInviteRevoked, err)
	})

	t.Run("sad path - exhausted invite", func(t *testing.T) {
		uc, mockRepo, _ := newInviteUsecase(t, config.Config{})

		inv := activeInvite()
		one := 1
		inv.MaxUses = &one
		inv.UsedCount = 1
		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(inv, nil)

		_, err := uc.Redeem(context.Background(), didStranger, inviteID)
		assert.Equal(t, appErrors.ErrInviteExhausted, err)
	})
}

func TestInviteUsecase_Revoke(t *testing.T) {
	convID := uuid.New()
	inviteID := uuid.New()

	t.Run("creator revokes without an admin role", func(t *testing.T) {
		uc, mockRepo, _ := newInviteUsecase(t, config.Config{})

		g := mockRepo.EXPECT()
		g.GetInvite(gomock.Any(), inviteID).Return(&model.Invite{
			ID:             inviteID,
			ConversationID: convID,
			CreatedBy:      didMember,
		}, nil)
		g.Revoke(gomock.Any(), inviteID, gomock.Any()).Return(nil)

		require.NoError(t, uc.Revoke(context.Background(), didMember, inviteID))
	})

	t.Run("admin revokes someone else's invite", func(t *testing.T) {
		uc, mockRepo, mockChatRepo := newInviteUsecase(t, config.Config{})

		g := mockRepo.EXPECT()
		g.GetInvite(gomock.Any(), inviteID).Return(&model.Invite{
			ID:             inviteID,
			ConversationID: convID,
			CreatedBy:      didMember,
		}, nil)
		mockChatRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didAdmin).
			Return(adminParticipant(convID, didAdmin), nil)
		g.Revoke(gomock.Any(), inviteID, gomock.Any()).Return(nil)

		require.NoError(t, uc.Revoke(context.Background(), didAdmin, inviteID))
	})

	t.Run("sad path - double revoke", func(t *testing.T) {
		uc, mockRepo, _ := newInviteUsecase(t, config.Config{})

		now := time.Now()
		mockRepo.EXPECT().GetInvite(gomock.Any(), inviteID).Return(&model.Invite{
			ID:             inviteID,
			ConversationID: convID,
			CreatedBy:      didMember,
			RevokedAt:      &now,
		}, nil)

		err := uc.Revoke(context.Background(), didMember, inviteID)
		assert.Equal(t, appErrors.ErrInviteRevoked, err)
	})
}
