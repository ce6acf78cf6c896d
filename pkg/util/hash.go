package util

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// HashRecordKey creates an MD5 hash from the (month, state, district) key,
// used as a deterministic document ID so re-imports overwrite rather than
// duplicate.
func HashRecordKey(month, state, district string) string {
	builder := strings.Builder{}
	builder.WriteString(strings.TrimSpace(strings.ToLower(month)))
	builder.WriteString("|")
	builder.WriteString(strings.TrimSpace(strings.ToLower(state)))
	builder.WriteString("|")
	builder.WriteString(strings.TrimSpace(strings.ToLower(district)))
	return hashString(builder.String())
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
