package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/httperr"
)

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	parts, err := s.participants.List(r.Context(), requester(r.Context()).DID, id)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, map[string]any{"participants": parts})
}

type addParticipantRequest struct {
	Did  string `json:"did"`
	Role string `json:"role"`
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	var req addParticipantRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	p, err := s.participants.Add(r.Context(), requester(r.Context()).DID, id, chat.AddParticipantCommand{
		DID:  req.Did,
		Role: model.Role(req.Role),
	})
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusCreated, p)
}

type setRoleRequest struct {
	Did  string `json:"did"`
	Role string `json:"role"`
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	var req setRoleRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	if req.Did == "" {
		httperr.RespondError(w, s.logger, errors.InvalidArg("did is required"))
		return
	}

	if err := s.participants.SetRole(r.Context(), requester(r.Context()).DID, id, req.Did, model.Role(req.Role)); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	self := requester(r.Context()).DID
	did := r.URL.Query().Get("did")
	if did == "" {
		did = self
	}

	if err := s.participants.Remove(r.Context(), self, id, did); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type markReadRequest struct {
	MessageID uuid.UUID `json:"messageId"`
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	var req markReadRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	if req.MessageID == uuid.Nil {
		httperr.RespondError(w, s.logger, errors.InvalidArg("messageId is required"))
		return
	}

	if err := s.participants.MarkRead(r.Context(), requester(r.Context()).DID, id, req.MessageID); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
