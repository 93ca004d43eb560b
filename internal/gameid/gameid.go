// Package gameid generates round identifiers: UUIDv7 values rendered as
// 26-character lowercase Crockford base32, so they sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/lox/teenpatti/internal/randutil"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// Generator produces round IDs. A nil random source means crypto/rand.
type Generator struct {
	entropy io.Reader
}

// NewGenerator creates a generator drawing its random bits from src, or from
// crypto/rand when src is nil.
func NewGenerator(src randutil.Source) *Generator {
	g := &Generator{}
	if src != nil {
		g.entropy = sourceReader{src: src}
	}
	return g
}

// Generate creates a new ID with crypto/rand entropy
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new ID using the generator's entropy source
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.entropy != nil {
		id, err = uuid.NewV7FromReader(g.entropy)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		// Only reachable if the entropy source fails, which crypto/rand
		// does not do on supported platforms.
		panic("gameid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. 128 bits are padded with two
// leading zero bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)

	var buf uint32
	bits := 2 // the two pad bits
	for _, b := range id {
		buf = buf<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(alphabet[(buf>>bits)&0x1f])
		}
	}
	return sb.String()
}

// Validate checks if an ID is 26 characters of lowercase base32 whose first
// character fits in three bits.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}

type sourceReader struct {
	src randutil.Source
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.IntN(256))
	}
	return len(p), nil
}
