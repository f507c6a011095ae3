// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package podfile

import (
	"context"
	"fmt"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/flutter-tools/podhelper/podhelper"
)

var defaultConfigurations = []string{"Debug", "Profile", "Release"}

func (p *Podfile) builtins(ctx context.Context) starlark.StringDict {
	return starlark.StringDict{
		"helper_dir": starlark.String(p.cfg.HelperDir),
		"path":       starPath(),
		"pod":        starlark.NewBuiltin("pod", p.starPod),
		"target":     starlark.NewBuiltin("target", p.starDeclareTarget),

		"flutter_root": starlark.NewBuiltin("flutter_root", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			err := starlark.UnpackArgs(fn.Name(), args, kwargs)
			if err != nil {
				return starlark.None, err
			}
			root, err := podhelper.FlutterRoot(ctx, p.cfg)
			if err != nil {
				return starlark.None, err
			}
			return starlark.String(root), nil
		}),
		"parse_kv_file": starlark.NewBuiltin("parse_kv_file", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var fname string
			err := starlark.UnpackArgs(fn.Name(), args, kwargs, "fname", &fname)
			if err != nil {
				return starlark.None, err
			}
			m, err := podhelper.ParseKVFile(ctx, p.cfg, fname)
			if err != nil {
				return starlark.None, err
			}
			d := starlark.NewDict(m.Len())
			for _, k := range m.Keys() {
				v, _ := m.Get(k)
				err := d.SetKey(starlark.String(k), starlark.String(v))
				if err != nil {
					return starlark.None, err
				}
			}
			return d, nil
		}),
		"flutter_install_ios_plugin_pods": starlark.NewBuiltin("flutter_install_ios_plugin_pods", p.starInstall(ctx, podhelper.InstallPluginPods)),
		"flutter_install_all_ios_pods":    starlark.NewBuiltin("flutter_install_all_ios_pods", p.starInstall(ctx, podhelper.InstallAllPods)),
		"flutter_additional_ios_build_settings": starlark.NewBuiltin("flutter_additional_ios_build_settings", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var t *starTarget
			err := starlark.UnpackArgs(fn.Name(), args, kwargs, "target", &t)
			if err != nil {
				return starlark.None, err
			}
			podhelper.AdditionalBuildSettings(t.t)
			return starlark.None, nil
		}),
	}
}

// Starlark function `pod(name, path=None)` to declare a pod.
func (p *Podfile) starPod(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, path string
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "path?", &path)
	if err != nil {
		return starlark.None, err
	}
	return starlark.None, p.Pod(name, podhelper.PodOptions{Path: path})
}

// Starlark function `target(name, configurations=None)` to declare a target.
func (p *Podfile) starDeclareTarget(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var configurations *starlark.List
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "configurations?", &configurations)
	if err != nil {
		return starlark.None, err
	}
	names := defaultConfigurations
	if configurations != nil {
		names = nil
		for i := 0; i < configurations.Len(); i++ {
			s, ok := starlark.AsString(configurations.Index(i))
			if !ok {
				return starlark.None, fmt.Errorf("%s: for parameter configurations: got %s, want string", fn.Name(), configurations.Index(i).Type())
			}
			names = append(names, s)
		}
	}
	t := &podhelper.Target{Name: name}
	for _, n := range names {
		t.BuildConfigurations = append(t.BuildConfigurations, &podhelper.BuildConfiguration{
			Name:          n,
			BuildSettings: map[string]string{},
		})
	}
	p.targets = append(p.targets, t)
	return &starTarget{t: t}, nil
}

type installFunc func(context.Context, podhelper.Config, podhelper.PodRegistry, string) error

// starInstall returns Starlark function `<name>(app_path=None)` to install flutter pods.
func (p *Podfile) starInstall(ctx context.Context, install installFunc) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var appPath starlark.Value = starlark.None
		err := starlark.UnpackArgs(fn.Name(), args, kwargs, "app_path?", &appPath)
		if err != nil {
			return starlark.None, err
		}
		var path string
		if appPath != starlark.None {
			s, ok := starlark.AsString(appPath)
			if !ok {
				return starlark.None, fmt.Errorf("%s: for parameter app_path: got %s, want string or None", fn.Name(), appPath.Type())
			}
			path = s
		}
		return starlark.None, install(ctx, p.cfg, p, path)
	}
}

// starPath returns path module.
//
//	base(fname)
//	dir(fname)
//	join(...)
func starPath() starlark.Value {
	pathModule := &starlarkstruct.Module{
		Name: "path",
		Members: starlark.StringDict{
			"base": starlark.NewBuiltin("base", starPathBase),
			"dir":  starlark.NewBuiltin("dir", starPathDir),
			"join": starlark.NewBuiltin("join", starPathJoin),
		},
	}
	pathModule.Freeze()
	return pathModule
}

// Starlark function `path.base(fname)` to return base name of fname.
func starPathBase(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fname string
	err := starlark.UnpackArgs("base", args, kwargs, "fname", &fname)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(filepath.Base(fname)), nil
}

// Starlark function `path.dir(fname)` to return dir name of fname.
func starPathDir(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fname string
	err := starlark.UnpackArgs("dir", args, kwargs, "fname", &fname)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(filepath.ToSlash(filepath.Dir(fname))), nil
}

// Starlark function `path.join(...)` to return joined path name.
func starPathJoin(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var elems []string
	for _, v := range args {
		s, ok := starlark.AsString(v)
		if !ok {
			return starlark.None, fmt.Errorf("join: for parameter elems: got %s, want string", v.Type())
		}
		elems = append(elems, s)
	}
	return starlark.String(filepath.ToSlash(filepath.Join(elems...))), nil
}
