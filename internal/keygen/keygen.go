// Package keygen produces key material for the cipher variants. It is the
// only place in the module that touches randomness.
package keygen

import (
	"crypto/hkdf"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
)

// Argon2id parameters for passphrase stretching.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	masterSize   = 32
)

const infoContext = "toyblock/keygen:v1"

// Random draws size key bits from r, or from crypto/rand when r is nil.
func Random(size int, r io.Reader) (bits.Block, error) {
	if size <= 0 {
		return nil, errs.Invalid("key size", "%d must be positive", size)
	}
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, (size+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("keygen: reading randomness: %w", err)
	}
	return fromBytes(buf, size), nil
}

// Provider derives a reproducible sequence of keys from one master secret
// with HKDF-SHA256. Every call to Next yields a fresh key; two providers
// built from the same secret and salt yield the same sequence.
type Provider struct {
	master  []byte
	salt    []byte
	counter uint64
}

// NewProvider returns a provider for master. The slices are copied.
func NewProvider(master, salt []byte) (*Provider, error) {
	if len(master) == 0 {
		return nil, errs.Invalid("master secret", "must not be empty")
	}
	return &Provider{
		master: append([]byte(nil), master...),
		salt:   append([]byte(nil), salt...),
	}, nil
}

// FromPassphrase stretches pass with Argon2id and returns a provider over
// the result.
func FromPassphrase(pass, salt string) (*Provider, error) {
	if pass == "" {
		return nil, errs.Invalid("passphrase", "must not be empty")
	}
	master := argon2.IDKey([]byte(pass), []byte(salt), argonTime, argonMemory, argonThreads, masterSize)
	return NewProvider(master, []byte(salt))
}

// Next derives the next size-bit key, labelled with the variant name.
func (p *Provider) Next(variant string, size int) (bits.Block, error) {
	if size <= 0 {
		return nil, errs.Invalid("key size", "%d must be positive", size)
	}
	idx := p.counter
	p.counter++

	var info strings.Builder
	info.Grow(len(infoContext) + 1 + len(variant) + 1 + 8)
	info.WriteString(infoContext)
	info.WriteByte(0)
	info.WriteString(variant)
	info.WriteByte(0)
	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], idx)
	info.Write(counterBytes[:])

	material, err := hkdf.Key(sha256.New, p.master, p.salt, info.String(), (size+7)/8)
	if err != nil {
		return nil, fmt.Errorf("keygen: hkdf key derivation failed: %w", err)
	}
	return fromBytes(material, size), nil
}

// fromBytes takes the first size bits of buf, most significant bit first.
func fromBytes(buf []byte, size int) bits.Block {
	b := make(bits.Block, size)
	for i := range b {
		b[i] = (buf[i/8] >> (7 - i%8)) & 1
	}
	return b
}
