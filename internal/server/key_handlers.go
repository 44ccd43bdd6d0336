package server

import (
	"net/http"

	"github.com/ima-jin/imajin-chat/internal/identity"
	"github.com/ima-jin/imajin-chat/internal/keys"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/httperr"
)

type uploadKeysRequest struct {
	IdentityKey    []byte   `json:"identityKey"`
	SignedPreKey   []byte   `json:"signedPreKey"`
	Signature      []byte   `json:"signature"`
	OneTimePreKeys [][]byte `json:"oneTimePreKeys"`
}

func (s *Server) handleUploadKeys(w http.ResponseWriter, r *http.Request) {
	var req uploadKeysRequest
	if err := decodeBody(r, &req); err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}

	// Only the authenticated identity can publish its own bundle; there is
	// no did parameter to spoof.
	err := s.keys.Upload(r.Context(), requester(r.Context()).DID, keys.UploadKeysCommand{
		IdentityKey:    req.IdentityKey,
		SignedPreKey:   req.SignedPreKey,
		Signature:      req.Signature,
		OneTimePreKeys: req.OneTimePreKeys,
	})
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOwnKeys(w http.ResponseWriter, r *http.Request) {
	dto, err := s.keys.OwnKeys(r.Context(), requester(r.Context()).DID)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, dto)
}

func (s *Server) handleFetchKeys(w http.ResponseWriter, r *http.Request) {
	did := r.PathValue("did")
	if !identity.ValidDID(did) {
		httperr.RespondError(w, s.logger, errors.ErrInvalidDID)
		return
	}

	bundle, err := s.keys.Fetch(r.Context(), did)
	if err != nil {
		httperr.RespondError(w, s.logger, err)
		return
	}
	httperr.RespondJSON(w, http.StatusOK, bundle)
}
