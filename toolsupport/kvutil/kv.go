// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package kvutil provides a parser for flat key=value manifest files,
// such as .flutter-plugins-dependencies.
package kvutil

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// MissingKeyError is returned when a manifest has no entry for the key.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key not found: %q", e.Key)
}

// Manifest is an ordered key value mapping.
// Keys are kept in the order they were first set.
type Manifest struct {
	keys   []string
	values map[string]string
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{values: make(map[string]string)}
}

// Set sets value for key. An existing key keeps its position.
func (m *Manifest) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns value for key.
func (m *Manifest) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns keys in order.
func (m *Manifest) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.keys)
}

// ParseFile parses a manifest file in fname on fsys.
// It returns an empty manifest if fname doesn't exist.
func ParseFile(ctx context.Context, fsys fs.FS, fname string) (*Manifest, error) {
	b, err := fs.ReadFile(fsys, fname)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("no manifest %s", fname)
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fname, err)
	}
	m, err := parse(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fname, err)
	}
	log.Debugf("manifest %s => %d entries", fname, m.Len())
	return m, nil
}

// Parse parses manifest contents.
//
//	<key>=<value>
//	<continuation>
//
// A line with '=' is split on the first '='. A non-blank line without '='
// is appended to the value of the last key without separator, and dropped
// if no key has been seen yet. Blank lines are ignored.
func Parse(b []byte) *Manifest {
	m, _ := parse(b)
	return m
}

func parse(b []byte) (*Manifest, error) {
	m := New()
	var currentKey string
	var hasKey bool
	s := bufio.NewScanner(bytes.NewReader(b))
	s.Buffer(make([]byte, 0, 4096), max(len(b)+1, bufio.MaxScanTokenSize))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			if hasKey {
				v, _ := m.Get(currentKey)
				m.Set(currentKey, v+line)
			}
			continue
		}
		currentKey = strings.TrimSpace(key)
		hasKey = true
		m.Set(currentKey, strings.TrimSpace(value))
	}
	return m, s.Err()
}

// Sub returns the nested mapping at the top-level key.
//
// Entries come from dotted keys `<key>.<name>=<value>`, and from a
// `<key>=<value>` entry whose value is a flow mapping such as
// `{"name": "path", ...}`. Both are merged in file order.
// It returns MissingKeyError if the manifest has neither.
func (m *Manifest) Sub(key string) (*Manifest, error) {
	sub := New()
	found := false
	prefix := key + "."
	for _, k := range m.keys {
		v := m.values[k]
		switch {
		case k == key:
			found = true
			err := parseFlowMapping(sub, v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
		case strings.HasPrefix(k, prefix):
			found = true
			sub.Set(strings.TrimPrefix(k, prefix), v)
		}
	}
	if !found {
		return nil, &MissingKeyError{Key: key}
	}
	return sub, nil
}

func parseFlowMapping(m *Manifest, v string) error {
	var doc yaml.Node
	err := yaml.Unmarshal([]byte(v), &doc)
	if err != nil {
		return err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty value.
		return nil
	}
	n := doc.Content[0]
	switch n.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		return fmt.Errorf("not a mapping: %q", v)
	default:
		return fmt.Errorf("not a mapping: %q", v)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, val := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: want string entry, got %v: %v", k.Line, k.Tag, val.Tag)
		}
		if val.Tag == "!!null" {
			m.Set(k.Value, "")
			continue
		}
		m.Set(k.Value, val.Value)
	}
	return nil
}
