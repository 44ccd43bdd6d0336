package keys

import (
	"github.com/ima-jin/imajin-chat/internal/keys/model"
)

type UploadKeysCommand struct {
	IdentityKey    []byte
	SignedPreKey   []byte
	Signature      []byte
	OneTimePreKeys [][]byte
}

// OwnKeysDTO is the bundle plus the unused pre-key count, for client-side
// replenishment decisions. Nothing is consumed.
type OwnKeysDTO struct {
	Bundle        *model.KeyBundle `json:"bundle"`
	UnusedPreKeys int              `json:"unusedPreKeys"`
}
