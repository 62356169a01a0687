package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes an ingested resume.
type Metadata struct {
	Filename  string `json:"filename"`
	Kind      Kind   `json:"kind"`
	Size      int    `json:"size"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw bytes
}

// NewMetadata creates metadata stamped with the current time.
func NewMetadata(filename string, kind Kind, data []byte) *Metadata {
	return &Metadata{
		Filename:  filename,
		Kind:      kind,
		Size:      len(data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(data),
	}
}

// ShortHash is the first 12 hex digits of Hash, used in log lines.
func (m *Metadata) ShortHash() string {
	if len(m.Hash) < 12 {
		return m.Hash
	}
	return m.Hash[:12]
}

func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
