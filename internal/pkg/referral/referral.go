// Package referral generates the opaque codes used to attribute signups.
package referral

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// CodeLength is the length of a generated referral code
const CodeLength = 10

// NewCode returns an uppercase hexadecimal referral code derived from a
// random UUID. Collisions are guarded by the unique index on users.referral_code.
func NewCode() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:]))[:CodeLength]
}
