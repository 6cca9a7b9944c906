// Package rsa is textbook RSA on small primes, encrypting a message one
// character at a time. It has no padding and is only a teaching aid.
package rsa

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// MinBits is the smallest prime size that still fits ASCII into the modulus.
const MinBits = 8

type PublicKey struct {
	E *big.Int
	N *big.Int
}

type PrivateKey struct {
	PublicKey
	D    *big.Int
	P, Q *big.Int
}

// GenerateKey picks two distinct random primes of the given size and a
// random public exponent coprime to φ(n).
func GenerateKey(r io.Reader, bits int) (*PrivateKey, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("rsa: prime size %d is below %d bits", bits, MinBits)
	}
	if r == nil {
		r = rand.Reader
	}
	p, err := rand.Prime(r, bits)
	if err != nil {
		return nil, fmt.Errorf("rsa: generating p: %w", err)
	}
	var q *big.Int
	for {
		q, err = rand.Prime(r, bits)
		if err != nil {
			return nil, fmt.Errorf("rsa: generating q: %w", err)
		}
		if q.Cmp(p) != 0 {
			break
		}
	}

	phi := totient(p, q)
	span := new(big.Int).Sub(phi, two)
	for {
		e, err := rand.Int(r, span)
		if err != nil {
			return nil, fmt.Errorf("rsa: choosing e: %w", err)
		}
		e.Add(e, two)
		if new(big.Int).GCD(nil, nil, e, phi).Cmp(one) == 0 {
			return KeyFromPrimes(p, q, e)
		}
	}
}

// KeyFromPrimes builds a key pair from chosen primes and exponent.
func KeyFromPrimes(p, q, e *big.Int) (*PrivateKey, error) {
	if p.Cmp(q) == 0 {
		return nil, errors.New("rsa: p and q must differ")
	}
	for _, v := range []*big.Int{p, q} {
		if !v.ProbablyPrime(20) {
			return nil, fmt.Errorf("rsa: %v is not prime", v)
		}
	}
	phi := totient(p, q)
	if e.Cmp(two) < 0 || e.Cmp(phi) >= 0 {
		return nil, fmt.Errorf("rsa: e = %v is outside [2, %v)", e, phi)
	}
	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, fmt.Errorf("rsa: e = %v is not invertible mod φ = %v", e, phi)
	}
	return &PrivateKey{
		PublicKey: PublicKey{E: new(big.Int).Set(e), N: new(big.Int).Mul(p, q)},
		D:         d,
		P:         new(big.Int).Set(p),
		Q:         new(big.Int).Set(q),
	}, nil
}

func totient(p, q *big.Int) *big.Int {
	return new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
}

// EncryptText encrypts every character of msg separately.
func (k *PublicKey) EncryptText(msg string) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(msg))
	for _, ch := range msg {
		m := big.NewInt(int64(ch))
		if m.Cmp(k.N) >= 0 {
			return nil, fmt.Errorf("rsa: character %q does not fit modulus %v", ch, k.N)
		}
		out = append(out, new(big.Int).Exp(m, k.E, k.N))
	}
	return out, nil
}

// DecryptText inverts EncryptText.
func (k *PrivateKey) DecryptText(ciphertext []*big.Int) (string, error) {
	var sb strings.Builder
	for i, c := range ciphertext {
		m := new(big.Int).Exp(c, k.D, k.N)
		if !m.IsInt64() || m.Int64() > 0x10ffff {
			return "", fmt.Errorf("rsa: block %d decrypts to %v, not a character", i, m)
		}
		sb.WriteRune(rune(m.Int64()))
	}
	return sb.String(), nil
}
