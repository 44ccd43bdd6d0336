package server

import (
	"context"
	"net/http"

	"github.com/ima-jin/imajin-chat/config"
	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/identity"
	"github.com/ima-jin/imajin-chat/internal/invite"
	"github.com/ima-jin/imajin-chat/internal/keys"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

// Server owns the HTTP surface. Usecases and the identity verifier are
// injected; the server itself holds no state beyond wiring.
type Server struct {
	cfg      *config.Config
	logger   logger.Logger
	verifier identity.Verifier

	conversations chat.ConversationUsecase
	participants  chat.ParticipantUsecase
	messages      chat.MessageUsecase
	invites       invite.InviteUsecase
	keys          keys.KeyUsecase

	mux *http.ServeMux
}

func NewServer(
	cfg *config.Config,
	log logger.Logger,
	verifier identity.Verifier,
	conversations chat.ConversationUsecase,
	participants chat.ParticipantUsecase,
	messages chat.MessageUsecase,
	invites invite.InviteUsecase,
	keyDirectory keys.KeyUsecase,
) *Server {
	s := &Server{
		cfg:           cfg,
		logger:        log,
		verifier:      verifier,
		conversations: conversations,
		participants:  participants,
		messages:      messages,
		invites:       invites,
		keys:          keyDirectory,
		mux:           http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	auth := s.requireIdentity

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.mux.Handle("GET /conversations", auth(s.handleListConversations))
	s.mux.Handle("POST /conversations", auth(s.handleCreateConversation))
	s.mux.Handle("GET /conversations/{id}", auth(s.handleGetConversation))
	s.mux.Handle("PATCH /conversations/{id}", auth(s.handleUpdateConversation))
	s.mux.Handle("DELETE /conversations/{id}", auth(s.handleDeleteConversation))

	s.mux.Handle("GET /conversations/{id}/participants", auth(s.handleListParticipants))
	s.mux.Handle("POST /conversations/{id}/participants", auth(s.handleAddParticipant))
	s.mux.Handle("PATCH /conversations/{id}/participants", auth(s.handleSetRole))
	s.mux.Handle("DELETE /conversations/{id}/participants", auth(s.handleRemoveParticipant))

	s.mux.Handle("GET /conversations/{id}/messages", auth(s.handleListMessages))
	s.mux.Handle("POST /conversations/{id}/messages", auth(s.handleSendMessage))
	s.mux.Handle("DELETE /conversations/{id}/messages/{messageID}", auth(s.handleDeleteMessage))
	s.mux.Handle("POST /conversations/{id}/read", auth(s.handleMarkRead))

	s.mux.Handle("POST /invites", auth(s.handleCreateInvite))
	s.mux.Handle("GET /invites", auth(s.handleListInvites))
	s.mux.HandleFunc("GET /invites/{id}", s.handlePreviewInvite) // public
	s.mux.Handle("POST /invites/{id}", auth(s.handleRedeemInvite))
	s.mux.Handle("DELETE /invites/{id}", auth(s.handleRevokeInvite))

	s.mux.Handle("POST /keys", auth(s.handleUploadKeys))
	s.mux.Handle("GET /keys", auth(s.handleOwnKeys))
	s.mux.HandleFunc("GET /keys/{did}", s.handleFetchKeys) // public
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// requester returns the verified identity placed in the context by
// requireIdentity.
func requester(ctx context.Context) *identity.Identity {
	id, _ := identity.FromContext(ctx)
	return id
}
