package itf

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

const maxDBNameLength = 63

var dbNameReplacer = strings.NewReplacer(
	"/", "_", " ", "_", "-", "_", ".", "_",
	"(", "_", ")", "_", "[", "_", "]", "_",
)

// sanitizeDBName maps a test name to a valid Postgres database name. Names that
// are too long keep their prefix and get a hash of the full name appended.
func sanitizeDBName(name string) string {
	sanitized := dbNameReplacer.Replace(strings.ToLower(name))
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		sanitized = "test_db"
	}
	if len(sanitized) <= maxDBNameLength {
		return sanitized
	}

	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(name)))[:8]
	prefix := strings.TrimRight(sanitized[:maxDBNameLength-len(hash)-1], "_")
	return prefix + "_" + hash
}
