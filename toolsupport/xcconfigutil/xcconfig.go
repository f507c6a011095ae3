// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package xcconfigutil

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// FlutterRootVar is the variable that holds the flutter SDK root.
const FlutterRootVar = "FLUTTER_ROOT"

// MissingFileError is returned when the generated settings file doesn't exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s must exist. If you're running pod install manually, make sure flutter pub get is executed first", e.Path)
}

// MissingVariableError is returned when the settings file has no line
// assigning the variable.
type MissingVariableError struct {
	Name string
	Path string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("%s not found in %s", e.Name, e.Path)
}

// FlutterRoot returns FLUTTER_ROOT in the settings file fname on fsys.
func FlutterRoot(ctx context.Context, fsys fs.FS, fname string) (string, error) {
	return Lookup(ctx, fsys, fname, FlutterRootVar)
}

// Lookup returns the value of the first line matching `<name>=<value>`
// in fname on fsys, trimmed of surrounding spaces.
func Lookup(ctx context.Context, fsys fs.FS, fname, name string) (string, error) {
	b, err := fs.ReadFile(fsys, fname)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &MissingFileError{Path: fname}
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fname, err)
	}
	v, ok, err := lookup(b, name)
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", fname, err)
	}
	if !ok {
		return "", &MissingVariableError{Name: name, Path: fname}
	}
	log.Debugf("%s: %s=%q", fname, name, v)
	return v, nil
}

func lookup(b []byte, name string) (string, bool, error) {
	// the pattern isn't anchored, so `MY_FLUTTER_ROOT=x` also matches
	// FLUTTER_ROOT.
	re, err := regexp.Compile(regexp.QuoteMeta(name) + `=(.*)`)
	if err != nil {
		return "", false, err
	}
	s := bufio.NewScanner(bytes.NewReader(b))
	s.Buffer(make([]byte, 0, 4096), max(len(b)+1, bufio.MaxScanTokenSize))
	for s.Scan() {
		m := re.FindSubmatch(s.Bytes())
		if m == nil {
			continue
		}
		return strings.TrimSpace(string(m[1])), true, nil
	}
	return "", false, s.Err()
}
