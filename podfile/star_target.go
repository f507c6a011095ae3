// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package podfile

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/flutter-tools/podhelper/podhelper"
)

// starTarget is a pod target in Starlark.
//
//	t.name
//	t.configurations
//	t.build_setting(configuration, key)
type starTarget struct {
	t *podhelper.Target
}

var (
	_ starlark.Value    = (*starTarget)(nil)
	_ starlark.HasAttrs = (*starTarget)(nil)
)

func (t *starTarget) String() string { return fmt.Sprintf("target(%q)", t.t.Name) }
func (t *starTarget) Type() string { return "target" }
func (t *starTarget) Freeze() {}
func (t *starTarget) Truth() starlark.Bool { return starlark.True }
func (t *starTarget) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: %s", t.Type()) }

func (t *starTarget) Attr(name string) (starlark.Value, error) {
	switch name {
	case "name":
		return starlark.String(t.t.Name), nil
	case "configurations":
		var names starlark.Tuple
		for _, c := range t.t.BuildConfigurations {
			names = append(names, starlark.String(c.Name))
		}
		return names, nil
	case "build_setting":
		return starlark.NewBuiltin("build_setting", t.buildSetting), nil
	}
	return nil, nil
}

func (t *starTarget) AttrNames() []string {
	return []string{"build_setting", "configurations", "name"}
}

// Starlark method `t.build_setting(configuration, key)` to return
// a build setting value, or None if not set.
func (t *starTarget) buildSetting(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var configuration, key string
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "configuration", &configuration, "key", &key)
	if err != nil {
		return starlark.None, err
	}
	for _, c := range t.t.BuildConfigurations {
		if c.Name != configuration {
			continue
		}
		v, ok := c.BuildSettings[key]
		if !ok {
			return starlark.None, nil
		}
		return starlark.String(v), nil
	}
	return starlark.None, fmt.Errorf("%s: no configuration %q in %s", fn.Name(), configuration, t.t.Name)
}
