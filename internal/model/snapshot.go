package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Payment session metadata is limited to 50 keys with values of at most 500
// characters. The snapshot is split across numbered keys and leaves two keys
// for the customer name and shipping address.
const (
	SnapshotKeyPrefix   = "items_"
	LegacySnapshotKey   = "items"
	MaxMetadataValueLen = 500
	MaxSnapshotChunks   = 48
)

// EncodeSnapshot serialises items into numbered metadata values
// (items_0, items_1, ...) no longer than MaxMetadataValueLen bytes each.
func EncodeSnapshot(items []SnapshotItem) (map[string]string, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order snapshot: %w", err)
	}

	chunks := splitUTF8(string(raw), MaxMetadataValueLen)
	if len(chunks) > MaxSnapshotChunks {
		return nil, ErrCartTooLarge
	}

	out := make(map[string]string, len(chunks))
	for i, chunk := range chunks {
		out[SnapshotKeyPrefix+strconv.Itoa(i)] = chunk
	}
	return out, nil
}

// SnapshotMetadata reassembles the snapshot JSON from numbered metadata values.
// Sessions written with a single items key are read as is. ok is false when
// the metadata carries neither form.
func SnapshotMetadata(metadata map[string]string) (string, bool) {
	first, ok := metadata[SnapshotKeyPrefix+"0"]
	if !ok {
		raw, ok := metadata[LegacySnapshotKey]
		return raw, ok
	}

	var b strings.Builder
	b.WriteString(first)
	for i := 1; i < MaxSnapshotChunks; i++ {
		part, ok := metadata[SnapshotKeyPrefix+strconv.Itoa(i)]
		if !ok {
			break
		}
		b.WriteString(part)
	}
	return b.String(), true
}

// splitUTF8 cuts s into pieces of at most size bytes without splitting a rune.
func splitUTF8(s string, size int) []string {
	var chunks []string
	for len(s) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
