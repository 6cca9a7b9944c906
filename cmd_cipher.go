// Copyright (c) 2025, The toyblock Authors.
// See LICENSE for licensing information.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AeonDave/toyblock/internal/bits"
	"github.com/AeonDave/toyblock/internal/cipher"
	"github.com/AeonDave/toyblock/internal/codec"
	"github.com/AeonDave/toyblock/internal/errs"
)

type CipherFlags struct {
	Variant   string `short:"c" default:"sdes" help:"Cipher variant, see the variants command"`
	Format    string `default:"auto" enum:"auto,bits,text" help:"How plaintext is written: bits, text, or auto (text when block and key are whole characters)"`
	KeyFormat string `default:"auto" enum:"auto,bits,text" help:"How the key is written, resolved like --format"`
}

// session is one variant with the codecs and formats resolved for its sizes.
type session struct {
	engine    *cipher.Engine
	block     codec.Codec
	key       codec.Codec
	format    codec.Format
	keyFormat codec.Format
}

func (f CipherFlags) open(env *Env) (*session, error) {
	e, err := cipher.Lookup(f.Variant)
	if err != nil {
		return nil, err
	}
	if env.Trace {
		name := e.Name()
		e = e.WithTracer(func(stage string, b bits.Block) {
			env.Logger.Info().Str("variant", name).Str("stage", stage).Str("block", b.String()).Msg("trace")
		})
	}
	block, err := codec.New(e.BlockSize(), bits.DefaultCharWidth)
	if err != nil {
		return nil, err
	}
	key, err := codec.New(e.KeySize(), bits.DefaultCharWidth)
	if err != nil {
		return nil, err
	}
	s := &session{
		engine:    e,
		block:     block,
		key:       key,
		format:    resolveFormat(f.Format, block, key),
		keyFormat: resolveFormat(f.KeyFormat, block, key),
	}
	env.Logger.Debug().
		Str("variant", e.Name()).
		Int("block_bits", e.BlockSize()).
		Int("key_bits", e.KeySize()).
		Str("format", string(s.format)).
		Str("key_format", string(s.keyFormat)).
		Msg("variant ready")
	return s, nil
}

// resolveFormat picks text for "auto" only when both block and key are a
// whole number of characters, so S-AES reads "ok"/"ab" and S-DES reads bits.
func resolveFormat(flag string, block, key codec.Codec) codec.Format {
	switch codec.Format(flag) {
	case codec.FormatBits:
		return codec.FormatBits
	case codec.FormatText:
		return codec.FormatText
	}
	if block.SupportsText() && key.SupportsText() {
		return codec.FormatText
	}
	return codec.FormatBits
}

func (s *session) render(b bits.Block) (string, error) {
	if s.format == codec.FormatText {
		return s.block.DecodeText(b)
	}
	return b.String(), nil
}

type EncryptCmd struct {
	CipherFlags

	Plaintext string `arg:"" help:"Plaintext block"`
	Key       string `arg:"" help:"Master key"`
}

func (c *EncryptCmd) Run(env *Env) error {
	s, err := c.open(env)
	if err != nil {
		return err
	}
	pt, err := s.block.Parse("plaintext", c.Plaintext, s.format)
	if err != nil {
		return err
	}
	key, err := s.key.Parse("key", c.Key, s.keyFormat)
	if err != nil {
		return err
	}
	ct, err := s.engine.Encrypt(pt, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, ct)
	return nil
}

type DecryptCmd struct {
	CipherFlags

	Ciphertext string `arg:"" help:"Ciphertext block as a binary string"`
	Key        string `arg:"" help:"Master key"`
}

func (c *DecryptCmd) Run(env *Env) error {
	s, err := c.open(env)
	if err != nil {
		return err
	}
	ct, err := s.block.ParseBits("ciphertext", c.Ciphertext)
	if err != nil {
		return err
	}
	key, err := s.key.Parse("key", c.Key, s.keyFormat)
	if err != nil {
		return err
	}
	pt, err := s.engine.Decrypt(ct, key)
	if err != nil {
		return err
	}
	out, err := s.render(pt)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, out)
	return nil
}

type SubkeysCmd struct {
	CipherFlags

	Key string `arg:"" help:"Master key"`
}

func (c *SubkeysCmd) Run(env *Env) error {
	s, err := c.open(env)
	if err != nil {
		return err
	}
	key, err := s.key.Parse("key", c.Key, s.keyFormat)
	if err != nil {
		return err
	}
	keys, err := s.engine.DeriveSubkeys(key)
	if err != nil {
		return err
	}
	// Feistel rounds are numbered from 1; SPN keys from the initial K0.
	first := 1
	if s.engine.Variant().Structure == cipher.SPN {
		first = 0
	}
	for i, k := range keys {
		fmt.Fprintf(env.Stdout, "K%d %s\n", first+i, k)
	}
	return nil
}

type InteractiveCmd struct {
	CipherFlags
}

func (c *InteractiveCmd) Run(env *Env) error {
	s, err := c.open(env)
	if err != nil {
		return err
	}
	in := bufio.NewScanner(env.Stdin)
	pt, err := prompt(env, in, fmt.Sprintf("Plaintext (%s): ", s.block.Describe(s.format)), func(line string) (bits.Block, error) {
		return s.block.Parse("plaintext", line, s.format)
	})
	if err != nil {
		return err
	}
	key, err := prompt(env, in, fmt.Sprintf("Key (%s): ", s.key.Describe(s.keyFormat)), func(line string) (bits.Block, error) {
		return s.key.Parse("key", line, s.keyFormat)
	})
	if err != nil {
		return err
	}

	ct, err := s.engine.Encrypt(pt, key)
	if err != nil {
		return err
	}
	back, err := s.engine.Decrypt(ct, key)
	if err != nil {
		return err
	}
	out, err := s.render(back)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "Ciphertext (binary): %s\n", ct)
	fmt.Fprintf(env.Stdout, "Decrypted          : %s\n", out)
	return nil
}

// prompt asks until parse accepts a line. Validation errors are shown and
// the question repeated; anything else ends the session.
func prompt(env *Env, in *bufio.Scanner, label string, parse func(string) (bits.Block, error)) (bits.Block, error) {
	for {
		fmt.Fprint(env.Stdout, label)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}
		b, err := parse(strings.TrimSpace(in.Text()))
		if errors.Is(err, errs.ErrValidation) {
			env.Logger.Debug().Err(err).Msg("re-prompting")
			fmt.Fprintf(env.Stdout, "\n%v\n", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}
