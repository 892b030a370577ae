package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ChecksumSHA256 returns the hex-encoded SHA-256 checksum of the provided
// content. Documents store this alongside their metadata so re-uploads of
// identical content can be detected.
func ChecksumSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
