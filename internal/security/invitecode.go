package security

import (
	"strings"

	"github.com/google/uuid"
)

// invitationCodeLength is the length of generated invitation codes.
const invitationCodeLength = 10

// GenerateInvitationCode mints an opaque referral token. Uniqueness is
// enforced by the database; callers retry on collision.
func GenerateInvitationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:invitationCodeLength]
}
