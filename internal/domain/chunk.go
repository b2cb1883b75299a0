package domain

import "unicode/utf8"

// MaxMessageLength is the platform limit for a single delivered message, in characters.
const MaxMessageLength = 2000

// Chunk splits text into consecutive segments of at most maxLength characters.
// Joining the segments reproduces text exactly, including invalid UTF-8 bytes,
// which count as one character each. Empty text yields no segments.
func Chunk(text string, maxLength int) []string {
	if text == "" {
		return nil
	}
	if maxLength <= 0 {
		return []string{text}
	}

	chunks := make([]string, 0, utf8.RuneCountInString(text)/maxLength+1)
	start, count := 0, 0
	for offset := 0; offset < len(text); {
		_, width := utf8.DecodeRuneInString(text[offset:])
		offset += width
		count++
		if count == maxLength {
			chunks = append(chunks, text[start:offset])
			start, count = offset, 0
		}
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}

	return chunks
}
