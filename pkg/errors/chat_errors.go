package errors

var (
	// Domain errors — used in usecase/repository
	ErrInvalidDID           = InvalidArg("identifier must be a valid did:<method>:<id> string")
	ErrInvalidConvType      = InvalidArg("conversation type must be 'direct' or 'group'")
	ErrGroupNameRequired    = InvalidArg("group conversations require a name")
	ErrDirectNeedsOnePeer   = InvalidArg("direct conversations require exactly one other participant")
	ErrConversationNotFound = NotFound("conversation not found")
	ErrMessageNotFound      = NotFound("message not found")
	ErrParticipantNotFound  = NotFound("participant not found")
	ErrAlreadyParticipant   = AlreadyExists("already a participant of this conversation")
	ErrDuplicateDirect      = AlreadyExists("a direct conversation between these identities already exists")
	ErrInsufficientRole     = Forbidden("insufficient role for this operation")
	ErrCannotActOnPeer      = Forbidden("cannot act on a participant of equal or higher rank")
	ErrCannotChangeOwnRole  = Forbidden("cannot change your own role")
	ErrOwnerCannotLeave     = Forbidden("owner must transfer ownership before leaving")
	ErrReadonlyParticipant  = Forbidden("readonly participants cannot send messages")
	ErrSystemTypeReserved   = InvalidArg("system message types are server-generated only")
	ErrReplyWrongConv       = NotFound("replied-to message not found in this conversation")

	ErrInviteNotFound  = NotFound("invite not found")
	ErrInviteRevoked   = Gone("invite has been revoked")
	ErrInviteExpired   = Gone("invite has expired")
	ErrInviteExhausted = Gone("invite has no uses left")
	ErrInviteNotForYou = Forbidden("invite is bound to a different identity")
)
