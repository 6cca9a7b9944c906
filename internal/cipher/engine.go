// Copyright (c) 2025, The toyblock Authors.
// See LICENSE for licensing information.

// Package cipher assembles key schedules and round functions into complete
// block ciphers and runs them as staged pipelines.
package cipher

import (
	"fmt"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/errs"
	"github.com/AeonDave/toyblock/internal/pipeline"
	"github.com/AeonDave/toyblock/internal/round"
	"github.com/AeonDave/toyblock/internal/schedule"
)

// Tracer receives every intermediate block of a pipeline run.
type Tracer func(stage string, block bits.Block)

// state is threaded through the pipeline. keys is already ordered for the
// direction being run.
type state struct {
	block bits.Block
	keys  schedule.Subkeys
}

// Engine is a validated, ready-to-run cipher variant. It is immutable and
// safe for concurrent use.
type Engine struct {
	variant Variant
	encrypt *pipeline.Pipeline[state]
	decrypt *pipeline.Pipeline[state]
	trace   Tracer
}

// New validates v and builds its encryption and decryption pipelines. Any
// malformed table is reported as an errs.ConfigurationError.
func New(v Variant) (*Engine, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	e := &Engine{variant: v}
	var err error
	switch v.Structure {
	case Feistel:
		err = e.buildFeistel()
	case SPN:
		err = e.buildSPN()
	}
	if err != nil {
		return nil, err
	}
	guard := func(stage string, s state) { errs.Width(stage, s.block.Len(), v.BlockSize) }
	e.encrypt.Guard(guard)
	e.decrypt.Guard(guard)
	return e, nil
}

// MustNew is like New but panics on a configuration error. Used for the
// built-in variants, where a bad table is fatal at startup.
func MustNew(v Variant) *Engine {
	e, err := New(v)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) buildFeistel() error {
	v := e.variant
	if err := v.Initial.CheckBijective("initial permutation", v.BlockSize); err != nil {
		return err
	}
	if !v.Final.Equal(v.Initial.Inverse()) {
		return errs.Config("final permutation", "is not the inverse of the initial permutation")
	}
	if err := v.Round.Check(v.BlockSize, v.Schedule.SubkeySize()); err != nil {
		return err
	}

	// Both directions share one structure; decryption differs only in the
	// order the subkeys are handed in.
	pipe := pipeline.New[state]()
	pipe.AddFunc("initial-permutation", func(s state) state {
		return state{v.Initial.Apply(s.block), s.keys}
	})
	for r := 0; r < v.Rounds; r++ {
		pipe.AddFunc(fmt.Sprintf("round-%d", r+1), func(s state) state {
			return state{v.Round.Apply(s.block, s.keys[r]), s.keys}
		})
		if r < v.Rounds-1 {
			pipe.AddFunc(fmt.Sprintf("swap-%d", r+1), func(s state) state {
				return state{round.Swap(s.block), s.keys}
			})
		}
	}
	pipe.AddFunc("final-permutation", func(s state) state {
		return state{v.Final.Apply(s.block), s.keys}
	})
	e.encrypt, e.decrypt = pipe, pipe
	return nil
}

func (e *Engine) buildSPN() error {
	v := e.variant
	if v.Schedule.SubkeySize() != v.BlockSize {
		return errs.Config("variant "+v.Name, "subkeys are %d bits, block is %d", v.Schedule.SubkeySize(), v.BlockSize)
	}
	spn, err := round.NewSPN(v.BlockSize, v.SBox, v.Shuffle, v.Mix)
	if err != nil {
		return err
	}
	addKey := func(i int) func(state) state {
		return func(s state) state { return state{round.AddRoundKey(s.block, s.keys[i]), s.keys} }
	}
	layer := func(fn func(bits.Block) bits.Block) func(state) state {
		return func(s state) state { return state{fn(s.block), s.keys} }
	}

	enc := pipeline.New[state]()
	enc.AddFunc("add-round-key-0", addKey(0))
	for r := 1; r <= v.Rounds; r++ {
		enc.AddFunc(fmt.Sprintf("substitute-%d", r), layer(spn.Substitute))
		enc.AddFunc(fmt.Sprintf("shuffle-%d", r), layer(spn.Shuffle))
		if spn.HasMix() && r < v.Rounds {
			enc.AddFunc(fmt.Sprintf("mix-columns-%d", r), layer(spn.MixColumns))
		}
		enc.AddFunc(fmt.Sprintf("add-round-key-%d", r), addKey(r))
	}

	dec := pipeline.New[state]()
	dec.AddFunc(fmt.Sprintf("add-round-key-%d", v.Rounds), addKey(v.Rounds))
	for r := v.Rounds; r >= 1; r-- {
		dec.AddFunc(fmt.Sprintf("inv-shuffle-%d", r), layer(spn.InvShuffle))
		dec.AddFunc(fmt.Sprintf("inv-substitute-%d", r), layer(spn.InvSubstitute))
		dec.AddFunc(fmt.Sprintf("add-round-key-%d", r-1), addKey(r-1))
		if spn.HasMix() && r > 1 {
			dec.AddFunc(fmt.Sprintf("inv-mix-columns-%d", r-1), layer(spn.InvMixColumns))
		}
	}
	e.encrypt, e.decrypt = enc, dec
	return nil
}

// Variant returns the configuration the engine was built from.
func (e *Engine) Variant() Variant { return e.variant }

// Name is the variant name.
func (e *Engine) Name() string { return e.variant.Name }

// BlockSize is the data block width in bits.
func (e *Engine) BlockSize() int { return e.variant.BlockSize }

// KeySize is the master key width in bits.
func (e *Engine) KeySize() int { return e.variant.KeySize() }

// Stages lists the encryption and decryption stage names in order.
func (e *Engine) Stages() (encrypt, decrypt []string) {
	return e.encrypt.Names(), e.decrypt.Names()
}

// WithTracer returns a copy of the engine that reports every intermediate
// block to fn.
func (e *Engine) WithTracer(fn Tracer) *Engine {
	cp := *e
	cp.trace = fn
	return &cp
}

// DeriveSubkeys runs the variant's key schedule.
func (e *Engine) DeriveSubkeys(key bits.Block) (schedule.Subkeys, error) {
	return e.variant.Schedule.Derive(key)
}

func (e *Engine) checkSubkeys(keys schedule.Subkeys) error {
	sched := e.variant.Schedule
	if len(keys) != sched.Count() {
		return errs.Size("subkey set", len(keys), sched.Count(), "subkeys")
	}
	for i, k := range keys {
		if k.Len() != sched.SubkeySize() {
			return errs.Size(fmt.Sprintf("subkey %d", i), k.Len(), sched.SubkeySize(), "bits")
		}
	}
	return nil
}

func (e *Engine) run(pipe *pipeline.Pipeline[state], field string, block bits.Block, keys schedule.Subkeys) (bits.Block, error) {
	if block.Len() != e.variant.BlockSize {
		return nil, errs.Size(field, block.Len(), e.variant.BlockSize, "bits")
	}
	if err := e.checkSubkeys(keys); err != nil {
		return nil, err
	}
	var observe pipeline.Observer[state]
	if e.trace != nil {
		observe = func(stage string, s state) { e.trace(stage, s.block) }
	}
	out := pipe.Execute(state{block: block.Clone(), keys: keys}, observe)
	return out.block, nil
}

// EncryptBlock encrypts one block with a subkey set from DeriveSubkeys.
func (e *Engine) EncryptBlock(plaintext bits.Block, keys schedule.Subkeys) (bits.Block, error) {
	return e.run(e.encrypt, "plaintext", plaintext, keys)
}

// DecryptBlock inverts EncryptBlock given the same subkey set.
func (e *Engine) DecryptBlock(ciphertext bits.Block, keys schedule.Subkeys) (bits.Block, error) {
	if e.variant.Structure == Feistel {
		if err := e.checkSubkeys(keys); err != nil {
			return nil, err
		}
		keys = keys.Reversed()
	}
	return e.run(e.decrypt, "ciphertext", ciphertext, keys)
}

// Encrypt derives the subkeys for key and encrypts one block.
func (e *Engine) Encrypt(plaintext, key bits.Block) (bits.Block, error) {
	keys, err := e.DeriveSubkeys(key)
	if err != nil {
		return nil, err
	}
	return e.EncryptBlock(plaintext, keys)
}

// Decrypt derives the subkeys for key and decrypts one block.
func (e *Engine) Decrypt(ciphertext, key bits.Block) (bits.Block, error) {
	keys, err := e.DeriveSubkeys(key)
	if err != nil {
		return nil, err
	}
	return e.DecryptBlock(ciphertext, keys)
}
