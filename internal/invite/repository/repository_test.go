package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	chatModel "github.com/ima-jin/imajin-chat/internal/chat/model"
	chatRepository "github.com/ima-jin/imajin-chat/internal/chat/repository"
	"github.com/ima-jin/imajin-chat/internal/invite/model"
	appErrors "github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

const (
	didIssuer = "did:key:z6MkIssuer"
	didJoiner = "did:key:z6MkJoiner"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("imajin"),
		postgres.WithUsername("imajin"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string: %v", err)
		return
	}

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	tables := []any{
		(*chatModel.Conversation)(nil),
		(*chatModel.Participant)(nil),
		(*chatModel.Message)(nil),
		(*model.Invite)(nil),
	}
	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func cleanup(t *testing.T) {
	t.Helper()
	for _, table := range []string{"invites", "messages", "participants", "conversations"} {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE `+table+` RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}
}

func seedConversation(t *testing.T) *chatModel.Conversation {
	t.Helper()
	chatRepo := chatRepository.NewChatRepository(testDB, logger.Logger{})
	issuer := didIssuer
	conv := &chatModel.Conversation{
		Type:       chatModel.ConvGroup,
		Name:       "open house",
		Visibility: chatModel.VisibilityPrivate,
		CreatedBy:  didIssuer,
	}
	parts := []chatModel.Participant{
		{DID: didIssuer, Role: chatModel.RoleOwner},
		{DID: "did:key:z6MkResident", Role: chatModel.RoleMember, InvitedBy: &issuer},
	}
	require.NoError(t, chatRepo.CreateConversation(t.Context(), conv, parts, nil))
	return conv
}

func joiner(convID uuid.UUID, did string) *chatModel.Participant {
	issuer := didIssuer
	return &chatModel.Participant{
		ConversationID: convID,
		DID:            did,
		Role:           chatModel.RoleMember,
		InvitedBy:      &issuer,
	}
}

func Test_InviteLifecycle(t *testing.T) {
	repo := NewInviteRepository(testDB, logger.Logger{})

	t.Run("create and get", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		inv := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer}
		require.NoError(t, repo.CreateInvite(t.Context(), inv))
		require.NotEqual(t, uuid.Nil, inv.ID)
		assert.False(t, inv.CreatedAt.IsZero())

		got, err := repo.GetInvite(t.Context(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, conv.ID, got.ConversationID)
		assert.Equal(t, 0, got.UsedCount)

		_, err = repo.GetInvite(t.Context(), uuid.New())
		assert.Equal(t, appErrors.ErrInviteNotFound, err)
	})

	t.Run("list excludes revoked", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		keep := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer}
		require.NoError(t, repo.CreateInvite(t.Context(), keep))
		gone := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer}
		require.NoError(t, repo.CreateInvite(t.Context(), gone))

		require.NoError(t, repo.Revoke(t.Context(), gone.ID, time.Now()))

		invs, err := repo.ListActive(t.Context(), conv.ID)
		require.NoError(t, err)
		require.Len(t, invs, 1)
		assert.Equal(t, keep.ID, invs[0].ID)
	})

	t.Run("revoke is one shot", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		inv := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer}
		require.NoError(t, repo.CreateInvite(t.Context(), inv))

		require.NoError(t, repo.Revoke(t.Context(), inv.ID, time.Now()))
		err := repo.Revoke(t.Context(), inv.ID, time.Now())
		assert.Equal(t, appErrors.ErrInviteRevoked, err)
	})
}

func Test_Redeem(t *testing.T) {
	repo := NewInviteRepository(testDB, logger.Logger{})
	chatRepo := chatRepository.NewChatRepository(testDB, logger.Logger{})

	t.Run("happy path - membership, counter and system message in one transaction", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		inv := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer}
		require.NoError(t, repo.CreateInvite(t.Context(), inv))

		sysMsg := chatModel.NewSystemMessage(conv.ID, didJoiner, chatModel.SystemEvent{Event: "invite_redeemed", Actor: didJoiner})
		require.NoError(t, repo.Redeem(t.Context(), inv.ID, joiner(conv.ID, didJoiner), sysMsg))

		p, err := chatRepo.GetParticipant(t.Context(), conv.ID, didJoiner)
		require.NoError(t, err)
		assert.Equal(t, chatModel.RoleMember, p.Role)

		got, err := repo.GetInvite(t.Context(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.UsedCount)

		msgs, err := chatRepo.ListMessagesBefore(t.Context(), conv.ID, nil, 10)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, chatModel.ContentSystem, msgs[0].ContentType)
	})

	t.Run("existing member does not spend a use", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		inv := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer}
		require.NoError(t, repo.CreateInvite(t.Context(), inv))

		require.NoError(t, repo.Redeem(t.Context(), inv.ID, joiner(conv.ID, didJoiner), nil))

		err := repo.Redeem(t.Context(), inv.ID, joiner(conv.ID, didJoiner), nil)
		assert.Equal(t, appErrors.ErrAlreadyParticipant, err)

		// the rolled-back transaction must not leave the counter bumped
		got, err := repo.GetInvite(t.Context(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.UsedCount)
	})

	t.Run("expired invite reports expired", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		past := time.Now().Add(-time.Hour)
		inv := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer, ExpiresAt: &past}
		require.NoError(t, repo.CreateInvite(t.Context(), inv))

		err := repo.Redeem(t.Context(), inv.ID, joiner(conv.ID, didJoiner), nil)
		assert.Equal(t, appErrors.ErrInviteExpired, err)
	})

	t.Run("revoked invite reports revoked", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		inv := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer}
		require.NoError(t, repo.CreateInvite(t.Context(), inv))
		require.NoError(t, repo.Revoke(t.Context(), inv.ID, time.Now()))

		err := repo.Redeem(t.Context(), inv.ID, joiner(conv.ID, didJoiner), nil)
		assert.Equal(t, appErrors.ErrInviteRevoked, err)
	})

	t.Run("concurrent redemptions cannot overrun max uses", func(t *testing.T) {
		defer cleanup(t)
		conv := seedConversation(t)

		one := 1
		inv := &model.Invite{ConversationID: conv.ID, CreatedBy: didIssuer, MaxUses: &one}
		require.NoError(t, repo.CreateInvite(t.Context(), inv))

		const contenders = 8
		errs := make([]error, contenders)
		var wg sync.WaitGroup
		for i := 0; i < contenders; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				did := fmt.Sprintf("did:key:z6MkJoiner%d", i)
				errs[i] = repo.Redeem(context.Background(), inv.ID, joiner(conv.ID, did), nil)
			}(i)
		}
		wg.Wait()

		var won int
		for _, err := range errs {
			if err == nil {
				won++
			} else {
				assert.Equal(t, appErrors.ErrInviteExhausted, err)
			}
		}
		assert.Equal(t, 1, won)

		got, err := repo.GetInvite(t.Context(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.UsedCount)
	})
}
