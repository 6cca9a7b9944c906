// Copyright (c) 2025, The toyblock Authors.
// See LICENSE for licensing information.

// toyblock runs small teaching block ciphers (S-DES, S-AES and variants
// built from the same parts) from the command line.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/AeonDave/toyblock/internal/logging"
)

type Globals struct {
	LogLevel  string `default:"info"    enum:"debug,info,warn,error" help:"Sets the minimum severity level for log messages"`
	LogOutput string `default:"console" enum:"console,plain,json"    help:"Specifies the format for log output"`
	Trace     bool   `help:"Log the block after every cipher stage"`
}

// Env is what every command runs against.
type Env struct {
	Logger zerolog.Logger
	Trace  bool
	Stdin  io.Reader
	Stdout io.Writer
}

type CLI struct {
	Globals

	Encrypt     EncryptCmd     `cmd:"" help:"Encrypt one block"`
	Decrypt     DecryptCmd     `cmd:"" help:"Decrypt one block"`
	Subkeys     SubkeysCmd     `cmd:"" help:"Print the round subkeys derived from a key"`
	Interactive InteractiveCmd `cmd:"" help:"Prompt for a plaintext and key, then encrypt and decrypt"`
	Variants    VariantsCmd    `cmd:"" help:"List the available cipher variants"`
	Keygen      KeygenCmd      `cmd:"" help:"Generate random or passphrase-derived keys"`
	DH          DHCmd          `cmd:"" name:"dh" help:"Run a toy Diffie-Hellman key exchange"`
	RSA         RSACmd         `cmd:"" name:"rsa" help:"Run toy RSA over a short message"`
	Version     VersionCmd     `cmd:"" help:"Display the version and exit"`
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(
		&cli,
		kong.Name("toyblock"),
		kong.Description("Small-block teaching ciphers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Summary:   true,
			FlagsLast: true,
		}),
	)

	logger, err := logging.New(logging.Config{
		Level:  cli.LogLevel,
		Output: cli.LogOutput,
	}, os.Stderr)
	ctx.FatalIfErrorf(err)

	env := &Env{
		Logger: logger,
		Trace:  cli.Trace,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	logger.Debug().Str("command", ctx.Command()).Msg("starting")
	ctx.FatalIfErrorf(ctx.Run(env))
}
