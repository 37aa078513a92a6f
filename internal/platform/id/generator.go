package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// RequestIDHeader carries the correlation id of an API call.
const RequestIDHeader = "X-Request-ID"

const maxIncomingIDLength = 64

// Generator creates opaque correlation IDs for requests and import runs.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// FromHeader returns a caller supplied id when it is short and printable.
func FromHeader(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > maxIncomingIDLength {
		return "", false
	}
	for _, r := range value {
		if r < 0x21 || r > 0x7e {
			return "", false
		}
	}
	return value, true
}
