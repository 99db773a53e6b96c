package auth

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives a deterministic avatar URL from an email address,
// following the Gravatar convention: md5 of the trimmed, lowercased
// address. Query params: 200px, PG-rated, "mystery man" fallback for
// addresses with no registered picture.
//
// md5 is fine here — this is an identifier, not a credential.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
