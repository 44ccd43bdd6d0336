package chat

import (
	"github.com/google/uuid"

	"github.com/ima-jin/imajin-chat/internal/chat/model"
)

// NOTE: commands travel from handler to usecase, DTOs travel back.

type CreateConversationCommand struct {
	Type            model.ConversationType
	ParticipantDIDs []string
	Name            string
	Description     string
	Visibility      model.Visibility
	TrustRadius     *int
}

type CreateConversationResult struct {
	Conversation *model.Conversation `json:"conversation"`
	// True when a direct conversation between the pair already existed and
	// was returned instead of a new one.
	Existing bool `json:"existing"`
}

type ConversationDetailDTO struct {
	Conversation *model.Conversation `json:"conversation"`
	Participants []model.Participant `json:"participants"`
	OwnRole      model.Role          `json:"ownRole"`
}

type AddParticipantCommand struct {
	DID  string
	Role model.Role
}

type SendMessageCommand struct {
	ContentType model.ContentType
	Ciphertext  []byte
	Nonce       []byte
	ReplyTo     *uuid.UUID
}

// MessagePage is a chronological (oldest to newest) slice of a conversation.
// HasMore is a heuristic: true iff the underlying fetch filled the limit, so
// a false positive is possible when the remaining count was exactly zero.
type MessagePage struct {
	Messages []model.Message `json:"messages"`
	HasMore  bool            `json:"hasMore"`
}
