// Package dh is a toy Diffie-Hellman key exchange over a small public prime.
package dh

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var one = big.NewInt(1)

// Params are the public values both parties agree on.
type Params struct {
	Prime     *big.Int
	Generator *big.Int
}

// DefaultParams returns p = 23, g = 5.
func DefaultParams() Params {
	return Params{Prime: big.NewInt(23), Generator: big.NewInt(5)}
}

// Check rejects a composite modulus or a generator outside (1, p).
func (params Params) Check() error {
	if params.Prime == nil || params.Generator == nil {
		return errors.New("dh: prime and generator are required")
	}
	if params.Prime.Cmp(big.NewInt(3)) < 0 || !params.Prime.ProbablyPrime(20) {
		return fmt.Errorf("dh: %v is not a usable prime", params.Prime)
	}
	if params.Generator.Cmp(one) <= 0 || params.Generator.Cmp(params.Prime) >= 0 {
		return fmt.Errorf("dh: generator %v must lie in (1, %v)", params.Generator, params.Prime)
	}
	return nil
}

// PublicKey computes g^private mod p.
func (params Params) PublicKey(private *big.Int) *big.Int {
	return new(big.Int).Exp(params.Generator, private, params.Prime)
}

// SharedSecret computes otherPublic^private mod p.
func (params Params) SharedSecret(private, otherPublic *big.Int) (*big.Int, error) {
	if otherPublic.Sign() <= 0 || otherPublic.Cmp(params.Prime) >= 0 {
		return nil, fmt.Errorf("dh: public key %v is outside [1, %v)", otherPublic, params.Prime)
	}
	return new(big.Int).Exp(otherPublic, private, params.Prime), nil
}

// Party holds one side's key pair.
type Party struct {
	Name    string
	Private *big.Int
	Public  *big.Int
}

// NewParty draws a private key uniformly from [1, p-2].
func NewParty(name string, params Params, r io.Reader) (*Party, error) {
	if r == nil {
		r = rand.Reader
	}
	span := new(big.Int).Sub(params.Prime, big.NewInt(2))
	private, err := rand.Int(r, span)
	if err != nil {
		return nil, fmt.Errorf("dh: private key for %s: %w", name, err)
	}
	private.Add(private, one)
	return PartyWithKey(name, params, private)
}

// PartyWithKey builds a party from a chosen private key.
func PartyWithKey(name string, params Params, private *big.Int) (*Party, error) {
	upper := new(big.Int).Sub(params.Prime, big.NewInt(2))
	if private.Cmp(one) < 0 || private.Cmp(upper) > 0 {
		return nil, fmt.Errorf("dh: private key %v for %s is outside [1, %v]", private, name, upper)
	}
	return &Party{Name: name, Private: private, Public: params.PublicKey(private)}, nil
}

// Exchange is the outcome of one run between two parties.
type Exchange struct {
	Params      Params
	Alice, Bob  *Party
	AliceSecret *big.Int
	BobSecret   *big.Int
}

// Agreed reports whether both sides computed the same secret.
func (e *Exchange) Agreed() bool { return e.AliceSecret.Cmp(e.BobSecret) == 0 }

// Run performs an exchange between two given parties.
func Run(params Params, alice, bob *Party) (*Exchange, error) {
	if err := params.Check(); err != nil {
		return nil, err
	}
	sa, err := params.SharedSecret(alice.Private, bob.Public)
	if err != nil {
		return nil, err
	}
	sb, err := params.SharedSecret(bob.Private, alice.Public)
	if err != nil {
		return nil, err
	}
	return &Exchange{Params: params, Alice: alice, Bob: bob, AliceSecret: sa, BobSecret: sb}, nil
}

// RunRandom draws both private keys from r and performs an exchange.
func RunRandom(params Params, r io.Reader) (*Exchange, error) {
	if err := params.Check(); err != nil {
		return nil, err
	}
	alice, err := NewParty("Alice", params, r)
	if err != nil {
		return nil, err
	}
	bob, err := NewParty("Bob", params, r)
	if err != nil {
		return nil, err
	}
	return Run(params, alice, bob)
}
