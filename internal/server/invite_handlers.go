package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/invite"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/httperr"
)

type createInviteRequest struct {
	ConversationID uuid.UUID `json:"conversationId"`
	ForDid         *string   `json:"forDid"`
	MaxUses        *int      `json:"maxUses"`
	ExpiresInHours *int      `json:"expiresInHours"`
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	if req.ConversationID == uuid.Nil {
		httperr.RespondError(w, s.logger, errors.InvalidArg("conversationId is required"))
		return
	}

	dto, err := s.invites.Create(r.Context(), requester(r.Context()).DID, invite.CreateInviteCommand{
		ConversationID: req.ConversationID,
		ForDID:         req.ForDid,
		MaxUses:        req.MaxUses,
		ExpiresInHours: req.ExpiresInHours,
	})
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleListInvites(w http.ResponseWriter, r *http.Request) {
	conversationID, err := uuid.Parse(r.URL.Query().Get("conversationId"))
	if err != nil {
		httperr.RespondError(w, s.logger, errors.InvalidArg("conversationId is required"))
		return
	}

	invs, err := s.invites.List(r.Context(), requester(r.Context()).DID, conversationID)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, map[string]any{"invites": invs})
}

func (s *Server) handlePreviewInvite(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	preview, err := s.invites.Preview(r.Context(), id)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, preview)
}

func (s *Server) handleRedeemInvite(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	result, err := s.invites.Redeem(r.Context(), requester(r.Context()).DID, id)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyMember {
		status = http.StatusOK
	}
	httperr.RespondJSON(w, status, result)
}

func (s *Server) handleRevokeInvite(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	if err := s.invites.Revoke(r.Context(), requester(r.Context()).DID, id); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
