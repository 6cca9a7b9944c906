// Copyright (c) 2025, The toyblock Authors.
// See LICENSE for licensing information.

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/mod/semver"
)

const develVersion = "(devel)"

type VersionCmd struct {
	Settings bool `help:"Also print the build settings"`
}

// moduleVersion reports the main module version, or "(devel)" for local
// builds and anything that is not a semantic version.
func moduleVersion(info *debug.BuildInfo) string {
	if info == nil {
		return develVersion
	}
	mod := &info.Main
	if mod.Replace != nil {
		mod = mod.Replace
	}
	if !semver.IsValid(mod.Version) {
		return develVersion
	}
	// Canonical drops build metadata such as "+incompatible".
	return semver.Canonical(mod.Version) + semver.Build(mod.Version)
}

func (c *VersionCmd) Run(env *Env) error {
	info, _ := debug.ReadBuildInfo()
	fmt.Fprintf(env.Stdout, "toyblock %s %s\n", moduleVersion(info), runtime.Version())
	if c.Settings && info != nil {
		fmt.Fprintln(env.Stdout, "\nBuild settings:")
		for _, s := range info.Settings {
			if s.Value == "" {
				continue
			}
			fmt.Fprintf(env.Stdout, "%16s %s\n", s.Key, s.Value)
		}
	}
	return nil
}
