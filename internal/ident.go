package internal

import (
	"crypto/md5"
	"encoding/hex"
)

// Version is the current phrasedeck version
const Version = "0.3.0"

// DeriveID derives a stable positive integer from a base string and a salt.
// The result fits the positive range of a 31-bit signed integer, which is
// what Anki expects for deck and model identifiers. The same inputs always
// produce the same ID, so re-exporting a deck updates it in place instead
// of creating a duplicate.
func DeriveID(base, salt string) int64 {
	sum := md5.Sum([]byte(base + salt))
	// First 4 bytes, masked to 31 bits.
	id := int64(sum[0])<<24 | int64(sum[1])<<16 | int64(sum[2])<<8 | int64(sum[3])
	id &= 0x7FFFFFFF
	if id == 0 {
		// Zero is not a valid Anki identifier.
		id = 1
	}
	return id
}

// DeriveGUID derives a stable hex string from a base string and a salt.
// Used for Anki note GUIDs: a note with the same GUID is recognized as an
// update on re-import.
func DeriveGUID(base, salt string) string {
	sum := md5.Sum([]byte(base + salt))
	return hex.EncodeToString(sum[:])[:16]
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}

func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r > 127
}
