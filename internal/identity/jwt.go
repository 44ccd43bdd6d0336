package identity

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ima-jin/imajin-chat/config"
	"github.com/ima-jin/imajin-chat/pkg/errors"
)

// JWTVerifier validates locally signed bearer tokens. Used in development
// and tests where no remote identity service is running; the token's claims
// carry the same fields the remote verifier would return.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(cfg *config.Config) *JWTVerifier {
	return &JWTVerifier{secret: []byte(cfg.Verifier.JWTSecret)}
}

type identityClaims struct {
	Kind      string `json:"kind"`
	PublicKey string `json:"pub,omitempty"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) Verify(_ context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, errors.ErrInvalidCredential
	}

	var claims identityClaims
	token, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrInvalidCredential
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.ErrInvalidCredential
	}

	did := claims.Subject
	if !ValidDID(did) {
		return nil, errors.ErrInvalidCredential
	}

	id := &Identity{DID: did, Kind: Kind(claims.Kind)}
	if id.Kind == "" {
		id.Kind = KindHuman
	}
	if claims.PublicKey != "" {
		pub, err := base64.StdEncoding.DecodeString(claims.PublicKey)
		if err != nil {
			return nil, errors.ErrInvalidCredential
		}
		id.PublicKey = pub
	}
	return id, nil
}

// IssueToken signs a credential for the given identity. Test and tooling
// helper; the server itself never mints credentials.
func IssueToken(cfg *config.Config, id *Identity) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Kind:      string(id.Kind),
		PublicKey: base64.StdEncoding.EncodeToString(id.PublicKey),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.DID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.Verifier.ExpiredIn) * time.Second)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Verifier.JWTSecret))
}
