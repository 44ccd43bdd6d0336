package model

import (
	"time"

	"github.com/uptrace/bun"
)

// KeyBundle is the long-term public key material an identity publishes for
// X3DH-style session establishment. One row per did, upserted on re-upload.
type KeyBundle struct {
	bun.BaseModel `bun:"table:public_keys,alias:public_keys"`

	DID string `bun:"did,pk" json:"did"`

	// Ed25519 — long-term identity key, also verifies the signed prekey.
	IdentityKey []byte `bun:",notnull" json:"identityKey"`

	SignedPreKey []byte `bun:",notnull" json:"signedPreKey"`
	Signature    []byte `bun:",notnull" json:"signature"` // over SignedPreKey, by IdentityKey

	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// PreKey is a one-time pre-key. Each row is handed out at most once; the
// claim marks used in the same transaction that selects the row.
type PreKey struct {
	ID  int64  `bun:",pk,autoincrement" json:"id"`
	DID string `bun:"did,notnull" json:"did"`

	Key       []byte    `bun:",notnull" json:"key"`
	Used      bool      `bun:",default:false" json:"used"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// Bundle is what a sender needs to encrypt to a recipient: the stored
// bundle plus at most one claimed one-time pre-key.
type Bundle struct {
	DID           string `json:"did"`
	IdentityKey   []byte `json:"identityKey"`
	SignedPreKey  []byte `json:"signedPreKey"`
	Signature     []byte `json:"signature"`
	OneTimePreKey []byte `json:"oneTimePreKey,omitempty"`
	PreKeyID      *int64 `json:"preKeyId,omitempty"`
}
