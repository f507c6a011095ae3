// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package podhelper registers flutter plugins as CocoaPods dependencies
// of an iOS host app and adjusts build settings of pod targets.
package podhelper

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flutter-tools/podhelper/toolsupport/kvutil"
	"github.com/flutter-tools/podhelper/toolsupport/xcconfigutil"
)

const (
	// PluginsDependenciesFile is the plugin manifest in the flutter root.
	PluginsDependenciesFile = ".flutter-plugins-dependencies"

	pluginsKey = "plugins"
)

// Config holds file locations used by the helper.
type Config struct {
	// HelperDir is the directory the helper lives in, i.e. ios/Flutter.
	HelperDir string

	// GeneratedXcconfig is the generated build settings file
	// that contains FLUTTER_ROOT.
	GeneratedXcconfig string

	// AppPath is the iOS application path used when
	// no application path is given to install.
	AppPath string

	// FS is used to read files. Paths are passed to FS as is.
	// Default to the root of the local filesystem.
	FS fs.FS
}

// NewConfig returns config for the helper in helperDir.
func NewConfig(helperDir string) Config {
	return Config{
		HelperDir:         helperDir,
		GeneratedXcconfig: filepath.Join(helperDir, "..", "Flutter", "Generated.xcconfig"),
		AppPath:           filepath.Join(helperDir, ".."),
	}
}

func (c Config) fsys() fs.FS {
	if c.FS != nil {
		return c.FS
	}
	return osFS{}
}

// osFS is fs.FS on the local filesystem that accepts
// absolute and relative paths as os.Open does.
// Such names are not fs.ValidPath, so osFS must only be used with
// fs.ReadFile and fs.Stat, which dispatch to its ReadFile and Stat
// methods. fs.Sub and fs.WalkDir are not supported.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// FlutterRoot returns the flutter SDK root recorded in the generated
// build settings.
func FlutterRoot(ctx context.Context, cfg Config) (string, error) {
	return xcconfigutil.FlutterRoot(ctx, cfg.fsys(), cfg.GeneratedXcconfig)
}

// ParseKVFile parses the key value manifest in fname.
// It returns empty manifest if fname doesn't exist.
func ParseKVFile(ctx context.Context, cfg Config, fname string) (*kvutil.Manifest, error) {
	return kvutil.ParseFile(ctx, cfg.fsys(), fname)
}

// joinPath joins elems with a single separator between them.
// Unlike filepath.Join, it doesn't clean the result, so ".." is kept.
func joinPath(elems ...string) string {
	var s string
	for i, e := range elems {
		if i == 0 {
			s = e
			continue
		}
		s = strings.TrimRight(s, "/") + "/" + strings.TrimLeft(e, "/")
	}
	return s
}
