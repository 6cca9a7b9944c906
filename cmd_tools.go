// Copyright (c) 2025, The toyblock Authors.
// See LICENSE for licensing information.

package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"text/tabwriter"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/cipher"
	"github.com/AeonDave/toyblock/internal/demo/dh"
	"github.com/AeonDave/toyblock/internal/demo/rsa"
	"github.com/AeonDave/toyblock/internal/keygen"
)

type VariantsCmd struct{}

func (c *VariantsCmd) Run(env *Env) error {
	tw := tabwriter.NewWriter(env.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTRUCTURE\tBLOCK\tKEY\tROUNDS\tSCHEDULE\tDESCRIPTION")
	for _, name := range cipher.Names() {
		e, err := cipher.Lookup(name)
		if err != nil {
			return err
		}
		v := e.Variant()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			v.Name, v.Structure, v.BlockSize, v.KeySize(), v.Rounds, v.Schedule.Kind(), v.Description)
	}
	return tw.Flush()
}

type KeygenCmd struct {
	Variant    string `short:"c" default:"sdes" help:"Cipher variant the keys are sized for"`
	Count      int    `short:"n" default:"1" help:"Number of keys to print"`
	Passphrase string `help:"Derive the keys from a passphrase with Argon2id instead of drawing random bits"`
	Salt       string `default:"toyblock" help:"Salt for passphrase derivation"`
}

func (c *KeygenCmd) Run(env *Env) error {
	if c.Count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", c.Count)
	}
	e, err := cipher.Lookup(c.Variant)
	if err != nil {
		return err
	}

	next := func() (bits.Block, error) { return keygen.Random(e.KeySize(), nil) }
	if c.Passphrase != "" {
		provider, err := keygen.FromPassphrase(c.Passphrase, c.Salt)
		if err != nil {
			return err
		}
		next = func() (bits.Block, error) { return provider.Next(e.Name(), e.KeySize()) }
		env.Logger.Debug().Str("salt", c.Salt).Msg("deriving keys from passphrase")
	}
	for i := 0; i < c.Count; i++ {
		k, err := next()
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, k)
	}
	return nil
}

type DHCmd struct {
	Prime     int64 `default:"23" help:"Public prime p"`
	Generator int64 `default:"5" help:"Public generator g"`
	Alice     int64 `help:"Alice's private key, drawn at random when 0"`
	Bob       int64 `help:"Bob's private key, drawn at random when 0"`
}

func (c *DHCmd) Run(env *Env) error {
	params := dh.Params{Prime: big.NewInt(c.Prime), Generator: big.NewInt(c.Generator)}
	if err := params.Check(); err != nil {
		return err
	}
	party := func(name string, private int64) (*dh.Party, error) {
		if private == 0 {
			return dh.NewParty(name, params, nil)
		}
		return dh.PartyWithKey(name, params, big.NewInt(private))
	}
	alice, err := party("Alice", c.Alice)
	if err != nil {
		return err
	}
	bob, err := party("Bob", c.Bob)
	if err != nil {
		return err
	}
	ex, err := dh.Run(params, alice, bob)
	if err != nil {
		return err
	}

	w := env.Stdout
	fmt.Fprintf(w, "Prime (p)            : %v\n", params.Prime)
	fmt.Fprintf(w, "Generator (g)        : %v\n", params.Generator)
	fmt.Fprintf(w, "Alice's private key  : %v\n", alice.Private)
	fmt.Fprintf(w, "Bob's private key    : %v\n", bob.Private)
	fmt.Fprintf(w, "Alice's public key   : %v\n", alice.Public)
	fmt.Fprintf(w, "Bob's public key     : %v\n", bob.Public)
	fmt.Fprintf(w, "Alice's shared secret: %v\n", ex.AliceSecret)
	fmt.Fprintf(w, "Bob's shared secret  : %v\n", ex.BobSecret)
	if !ex.Agreed() {
		return errors.New("shared secrets do not match")
	}
	fmt.Fprintf(w, "Shared secret established: %v\n", ex.AliceSecret)
	return nil
}

type RSACmd struct {
	Bits    int    `default:"16" help:"Size of each prime in bits"`
	Message string `default:"Hello RSA!" help:"Message to encrypt character by character"`
	P       int64  `help:"Use this prime p instead of a random one (requires --q and --e)"`
	Q       int64  `help:"Use this prime q"`
	E       int64  `help:"Use this public exponent"`
}

func (c *RSACmd) Run(env *Env) error {
	var (
		key *rsa.PrivateKey
		err error
	)
	if c.P != 0 || c.Q != 0 || c.E != 0 {
		if c.P == 0 || c.Q == 0 || c.E == 0 {
			return errors.New("--p, --q and --e must be given together")
		}
		key, err = rsa.KeyFromPrimes(big.NewInt(c.P), big.NewInt(c.Q), big.NewInt(c.E))
	} else {
		key, err = rsa.GenerateKey(nil, c.Bits)
	}
	if err != nil {
		return err
	}
	env.Logger.Debug().Str("p", key.P.String()).Str("q", key.Q.String()).Msg("rsa key ready")

	ct, err := key.EncryptText(c.Message)
	if err != nil {
		return err
	}
	pt, err := key.DecryptText(ct)
	if err != nil {
		return err
	}
	parts := make([]string, len(ct))
	for i, v := range ct {
		parts[i] = v.String()
	}

	w := env.Stdout
	fmt.Fprintf(w, "Public key (e, n) : (%v, %v)\n", key.E, key.N)
	fmt.Fprintf(w, "Private key (d, n): (%v, %v)\n", key.D, key.N)
	fmt.Fprintf(w, "Message           : %s\n", c.Message)
	fmt.Fprintf(w, "Ciphertext        : [%s]\n", strings.Join(parts, ", "))
	fmt.Fprintf(w, "Decrypted         : %s\n", pt)
	return nil
}
