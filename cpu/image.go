package cpu

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// WordsToBytes converts a slice of 16-bit words to a big-endian byte slice.
func WordsToBytes(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(out[i*2:], w)
	}
	return out
}

// BytesToWords interprets bytes as big-endian 16-bit words.
// An odd trailing byte is an error.
func BytesToWords(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("raw image has odd length %d", len(b))
	}
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(b[i*2:])
	}
	return out, nil
}

// ParseImage reads the text image format: one word per line written as
// sixteen binary digits. Blank lines are skipped.
func ParseImage(text string) ([]uint16, error) {
	var words []uint16
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) != 16 {
			return nil, fmt.Errorf("line %d: expected 16 binary digits, got %d characters", i+1, len(line))
		}
		var w uint16
		for _, ch := range line {
			switch ch {
			case '0':
				w <<= 1
			case '1':
				w = w<<1 | 1
			default:
				return nil, fmt.Errorf("line %d: invalid digit %q", i+1, ch)
			}
		}
		words = append(words, w)
	}
	return words, nil
}
