package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/httperr"
)

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.InvalidArg("invalid request body")
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, errors.InvalidArg("invalid " + name)
	}
	return id, nil
}

type createConversationRequest struct {
	Type            string   `json:"type"`
	ParticipantDids []string `json:"participantDids"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Visibility      string   `json:"visibility"`
	TrustRadius     *int     `json:"trustRadius"`
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	result, err := s.conversations.Create(r.Context(), requester(r.Context()).DID, chat.CreateConversationCommand{
		Type:            model.ConversationType(req.Type),
		ParticipantDIDs: req.ParticipantDids,
		Name:            req.Name,
		Description:     req.Description,
		Visibility:      model.Visibility(req.Visibility),
		TrustRadius:     req.TrustRadius,
	})
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	status := http.StatusCreated
	if result.Existing {
		status = http.StatusOK
	}
	httperr.RespondJSON(w, status, result)
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := s.conversations.List(r.Context(), requester(r.Context()).DID)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, map[string]any{"conversations": convs})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	detail, err := s.conversations.Get(r.Context(), requester(r.Context()).DID, id)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, detail)
}

type updateConversationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Avatar      *string `json:"avatar"`
	Visibility  *string `json:"visibility"`
	TrustRadius *int    `json:"trustRadius"`
}

func (s *Server) handleUpdateConversation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	var req updateConversationRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	patch := chat.ConversationPatch{
		Name:        req.Name,
		Description: req.Description,
		Avatar:      req.Avatar,
		TrustRadius: req.TrustRadius,
	}
	if req.Visibility != nil {
		v := model.Visibility(*req.Visibility)
		patch.Visibility = &v
	}

	conv, err := s.conversations.Update(r.Context(), requester(r.Context()).DID, id, patch)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, conv)
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	if err := s.conversations.Delete(r.Context(), requester(r.Context()).DID, id); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
