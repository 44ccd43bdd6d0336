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
	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/mocks"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/internal/events"
	appErrors "github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

func newMessageUsecase(t *testing.T) (*MessageUsecase, *mocks.MockChatRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockChatRepository(ctrl)

	cfg := config.Config{}
	log, _ := logger.NewLogger(&cfg)
	uc := NewMessageUsecase(mockRepo, events.Noop{}, *log)
	return uc, mockRepo
}

func TestMessageUsecase_Send(t *testing.T) {
	convID := uuid.New()
	cmd := chat.SendMessageCommand{
		Ciphertext: []byte("sealed"),
		Nonce:      []byte("nonce"),
	}

	t.Run("happy path - defaults to text and touches recency", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)
		g.InsertMessage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.Message) error {
				assert.Equal(t, model.ContentText, m.ContentType)
				assert.Equal(t, didAlice, m.FromDID)
				m.ID = uuid.New()
				m.CreatedAt = time.Now()
				return nil
			})
		g.TouchLastMessage(gomock.Any(), convID, gomock.Any()).Return(nil)

		msg, err := uc.Send(context.Background(), didAlice, convID, cmd)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, msg.ID)
	})

	t.Run("recency touch failure does not fail the send", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)
		g.InsertMessage(gomock.Any(), gomock.Any()).Return(nil)
		g.TouchLastMessage(gomock.Any(), convID, gomock.Any()).
			Return(appErrors.Internal("db hiccup"))

		_, err := uc.Send(context.Background(), didAlice, convID, cmd)
		require.NoError(t, err)
	})

	t.Run("sad path - readonly participant", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		mockRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didBob).
			Return(participant(convID, didBob, model.RoleReadonly), nil)

		_, err := uc.Send(context.Background(), didBob, convID, cmd)
		assert.Equal(t, appErrors.ErrReadonlyParticipant, err)
	})

	t.Run("sad path - system type is reserved", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		mockRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleOwner), nil)

		sysCmd := cmd
		sysCmd.ContentType = model.ContentSystem

		_, err := uc.Send(context.Background(), didAlice, convID, sysCmd)
		assert.Equal(t, appErrors.ErrSystemTypeReserved, err)
	})

	t.Run("sad path - empty ciphertext", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		mockRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)

		_, err := uc.Send(context.Background(), didAlice, convID, chat.SendMessageCommand{})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("sad path - reply target in another conversation", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		replyTo := uuid.New()
		replyCmd := cmd
		replyCmd.ReplyTo = &replyTo

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)
		g.GetMessage(gomock.Any(), convID, replyTo).
			Return(nil, appErrors.ErrMessageNotFound)

		_, err := uc.Send(context.Background(), didAlice, convID, replyCmd)
		assert.Equal(t, appErrors.ErrReplyWrongConv, err)
	})

	t.Run("sad path - non-member", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		mockRepo.EXPECT().
			GetParticipant(gomock.Any(), convID, didCarol).
			Return(nil, appErrors.ErrParticipantNotFound)

		_, err := uc.Send(context.Background(), didCarol, convID, cmd)
		assert.Equal(t, appErrors.ErrConversationNotFound, err)
	})
}

func TestMessageUsecase_ListPage(t *testing.T) {
	convID := uuid.New()
	base := time.Now().Add(-time.Hour)

	// four messages, t1 oldest .. t4 newest, as the repository returns them:
	// newest first
	mkMsg := func(offset time.Duration) model.Message {
		return model.Message{
			ID:             uuid.New(),
			ConversationID: convID,
			FromDID:        didAlice,
			CreatedAt:      base.Add(offset),
		}
	}
	t1 := mkMsg(1 * time.Minute)
	t2 := mkMsg(2 * time.Minute)
	t3 := mkMsg(3 * time.Minute)
	t4 := mkMsg(4 * time.Minute)

	t.Run("page comes back oldest first with hasMore set", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)
		g.ListMessagesBefore(gomock.Any(), convID, nil, 2).
			Return([]model.Message{t4, t3}, nil)

		page, err := uc.ListPage(context.Background(), didAlice, convID, 2, nil)
		require.NoError(t, err)
		require.Len(t, page.Messages, 2)
		assert.Equal(t, t3.ID, page.Messages[0].ID)
		assert.Equal(t, t4.ID, page.Messages[1].ID)
		assert.True(t, page.HasMore)
	})

	t.Run("cursor pages strictly older messages", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)
		g.GetMessage(gomock.Any(), convID, t3.ID).Return(&t3, nil)
		g.ListMessagesBefore(gomock.Any(), convID, &t3.CreatedAt, 50).
			Return([]model.Message{t2, t1}, nil)

		page, err := uc.ListPage(context.Background(), didAlice, convID, 0, &t3.ID)
		require.NoError(t, err)
		require.Len(t, page.Messages, 2)
		assert.Equal(t, t1.ID, page.Messages[0].ID)
		assert.Equal(t, t2.ID, page.Messages[1].ID)
		assert.False(t, page.HasMore)
	})

	t.Run("unresolvable cursor falls back to unbounded fetch", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		bogus := uuid.New()
		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)
		g.GetMessage(gomock.Any(), convID, bogus).
			Return(nil, appErrors.ErrMessageNotFound)
		g.ListMessagesBefore(gomock.Any(), convID, nil, 50).
			Return([]model.Message{t4, t3, t2, t1}, nil)

		page, err := uc.ListPage(context.Background(), didAlice, convID, 0, &bogus)
		require.NoError(t, err)
		assert.Len(t, page.Messages, 4)
	})

	t.Run("limit is clamped to the maximum", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleMember), nil)
		g.ListMessagesBefore(gomock.Any(), convID, nil, maxPageLimit).
			Return(nil, nil)

		page, err := uc.ListPage(context.Background(), didAlice, convID, 10_000, nil)
		require.NoError(t, err)
		assert.Empty(t, page.Messages)
		assert.False(t, page.HasMore)
	})
}

func TestMessageUsecase_Delete(t *testing.T) {
	convID := uuid.New()
	msgID := uuid.New()
	ownMsg := &model.Message{ID: msgID, ConversationID: convID, FromDID: didBob}

	t.Run("sender deletes own message", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didBob).
			Return(participant(convID, didBob, model.RoleMember), nil)
		g.GetMessage(gomock.Any(), convID, msgID).Return(ownMsg, nil)
		g.SoftDeleteMessage(gomock.Any(), convID, msgID).Return(nil)

		require.NoError(t, uc.Delete(context.Background(), didBob, convID, msgID))
	})

	t.Run("admin deletes another member's message", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didAlice).
			Return(participant(convID, didAlice, model.RoleAdmin), nil)
		g.GetMessage(gomock.Any(), convID, msgID).Return(ownMsg, nil)
		g.SoftDeleteMessage(gomock.Any(), convID, msgID).Return(nil)

		require.NoError(t, uc.Delete(context.Background(), didAlice, convID, msgID))
	})

	t.Run("sad path - member cannot delete a peer's message", func(t *testing.T) {
		uc, mockRepo := newMessageUsecase(t)

		g := mockRepo.EXPECT()
		g.GetParticipant(gomock.Any(), convID, didCarol).
			Return(participant(convID, didCarol, model.RoleMember), nil)
		g.GetMessage(gomock.Any(), convID, msgID).Return(ownMsg, nil)

		err := uc.Delete(context.Background(), didCarol, convID, msgID)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodePermissionDenied, appErrors.CodeOf(err))
	})
}
