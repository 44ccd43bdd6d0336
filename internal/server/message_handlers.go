package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat"
	"github.com/ima-jin/imajin-chat/internal/chat/model"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/httperr"
)

type sendMessageRequest struct {
	ContentType string     `json:"contentType"`
	Ciphertext  []byte     `json:"ciphertext"`
	Nonce       []byte     `json:"nonce"`
	ReplyTo     *uuid.UUID `json:"replyTo"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	var req sendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	msg, err := s.messages.Send(r.Context(), requester(r.Context()).DID, id, chat.SendMessageCommand{
		ContentType: model.ContentType(req.ContentType),
		Ciphertext:  req.Ciphertext,
		Nonce:       req.Nonce,
		ReplyTo:     req.ReplyTo,
	})
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			httperr.RespondError(w, s.logger, errors.InvalidArg("invalid limit"))
			return
		}
	}

	var before *uuid.UUID
	if raw := r.URL.Query().Get("before"); raw != "" {
		b, err := uuid.Parse(raw)
		if err != nil {
			httperr.RespondError(w, s.logger, errors.InvalidArg("invalid before cursor"))
			return
		}
		before = &b
	}

	page, err := s.messages.ListPage(r.Context(), requester(r.Context()).DID, id, limit, before)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, page)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	messageID, err := pathUUID(r, "messageID")
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	if err := s.messages.Delete(r.Context(), requester(r.Context()).DID, id, messageID); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
