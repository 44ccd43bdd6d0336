package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/ima-jin/imajin-chat/config"
	"github.com/ima-jin/imajin-chat/pkg/errors"
	"github.com/ima-jin/imajin-chat/pkg/logger"
)

// RemoteVerifier calls the external identity service. Network failure and
// timeout surface as UNAVAILABLE, never as an authentication failure.
type RemoteVerifier struct {
	url    string
	client *http.Client
	logger logger.Logger
}

func NewRemoteVerifier(cfg *config.Config, log logger.Logger) *RemoteVerifier {
	return &RemoteVerifier{
		url:    cfg.Verifier.RemoteURL,
		client: &http.Client{Timeout: cfg.Verifier.Timeout},
		logger: log,
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, errors.ErrInvalidCredential
	}

	body, err := json.Marshal(map[string]string{"credential": credential})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "encode verify request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url+"/verify", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "build verify request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("identity verifier unreachable", "err", err)
		return nil, errors.ErrVerifierUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var id Identity
		if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
			return nil, errors.Wrap(errors.CodeUnavailable, "malformed verifier response", err)
		}
		if !ValidDID(id.DID) {
			return nil, errors.Wrap(errors.CodeUnavailable, "verifier returned invalid did", nil)
		}
		return &id, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.ErrInvalidCredential
	default:
		v.logger.Warn("identity verifier returned unexpected status", "status", resp.StatusCode)
		return nil, errors.ErrVerifierUnavailable
	}
}
