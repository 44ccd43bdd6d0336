package server

import (
	"net/http"
	"strings"

	"github.com/ima-jin/imajin-chat/internal/identity"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/httperr"
)

// requireIdentity resolves the bearer credential through the injected
// verifier and stores the verified identity in the request context. A missing
// credential and a rejected credential are both UNAUTHENTICATED; a verifier
// outage is UNAVAILABLE and must never look like an auth failure.
func (s *Server) requireIdentity(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := bearerToken(r)
		if credential == "" {
			httperr.RespondError(w, s.logger, errors.ErrInvalidCredential)
			return
		}

		id, err := s.verifier.Verify(r.Context(), credential)
		if err != nil {
			httperr.RespondError(w, s.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), id)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
