package identity

import (
	"context"
	"regexp"

	"github.com/ima-jin/imajin-chat/pkg/errors"
)

// Kind is the coarse classification the verifier attaches to an identity.
type Kind string

const (
	KindHuman     Kind = "human"
	KindAgent     Kind = "agent"
	KindAutomated Kind = "automated"
)

// Identity is a verified network identity. It is resolved once per request
// by a Verifier and treated as immutable afterwards.
type Identity struct {
	DID       string `json:"did"`
	PublicKey []byte `json:"publicKey,omitempty"`
	Kind      Kind   `json:"kind"`
}

// Verifier exchanges a bearer credential for a verified identity.
// Implementations must distinguish "credential rejected" (UNAUTHENTICATED)
// from "verifier unreachable" (UNAVAILABLE).
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

var didRegex = regexp.MustCompile(`^did:[a-z0-9]+:[A-Za-z0-9._%:-]+$`)

func ValidDID(did string) bool {
	return didRegex.MatchString(did)
}

func ValidateDIDs(dids ...string) error {
	for _, did := range dids {
		if !ValidDID(did) {
			return errors.ErrInvalidDID
		}
	}
	return nil
}

type ctxKey struct{}

func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok
}
