// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package helperflags provides flags shared by podhelper subcommands.
package helperflags

import (
	"flag"
	"path/filepath"

	"github.com/flutter-tools/podhelper/podhelper"
)

// Flags are flags to locate the flutter helper files.
type Flags struct {
	helperDir string
	xcconfig  string
}

// Register registers flags in fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.helperDir, "helper_dir", filepath.Join("ios", "Flutter"), "directory of the flutter pod helper in the iOS app, i.e. ios/Flutter")
	fs.StringVar(&f.xcconfig, "xcconfig", "", "generated build settings file that contains FLUTTER_ROOT. default to <helper_dir>/../Flutter/Generated.xcconfig")
}

// Config returns the helper config specified by the flags.
func (f *Flags) Config() (podhelper.Config, error) {
	helperDir, err := filepath.Abs(f.helperDir)
	if err != nil {
		return podhelper.Config{}, err
	}
	cfg := podhelper.NewConfig(helperDir)
	if f.xcconfig != "" {
		cfg.GeneratedXcconfig = f.xcconfig
	}
	return cfg, nil
}
