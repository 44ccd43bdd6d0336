package errors

var (
	ErrKeyBundleNotFound    = NotFound("no key bundle published for this identity")
	ErrInvalidIdentityKey   = InvalidArg("invalid identity key")
	ErrInvalidSignedPreKey  = InvalidArg("invalid signed prekey")
	ErrInvalidOneTimePreKey = InvalidArg("invalid one-time prekey")
	ErrBadPreKeySignature   = InvalidArg("signed prekey signature does not verify against identity key")
	ErrTooManyPreKeys       = InvalidArg("too many one-time prekeys in one upload")
	ErrVerifierUnavailable  = Unavailable("identity verifier unreachable")
	ErrInvalidCredential    = Unauthorized("missing or invalid credential")
)
