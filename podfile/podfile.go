// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package podfile evaluates Starlark Podfiles that declare pod dependencies
// and pod targets of an iOS host app.
//
// A Podfile looks like
//
//	flutter_install_all_ios_pods()
//	pod("Firebase", path = path.join(helper_dir, "..", "Firebase"))
//	target("Runner")
//
//	def post_install(targets):
//	    for t in targets:
//	        flutter_additional_ios_build_settings(t)
package podfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"

	"github.com/flutter-tools/podhelper/podhelper"
)

const postInstallHook = "post_install"

// Podfile is an evaluated Podfile.
type Podfile struct {
	cfg podhelper.Config

	pods     []podhelper.Pod
	podIndex map[string]int

	targets []*podhelper.Target
}

// New returns an empty Podfile for the helper config.
func New(cfg podhelper.Config) *Podfile {
	return &Podfile{
		cfg:      cfg,
		podIndex: make(map[string]int),
	}
}

// Pod registers a pod. Registering the same name again
// replaces its options but keeps its position.
func (p *Podfile) Pod(name string, opts podhelper.PodOptions) error {
	if name == "" {
		return errors.New("empty pod name")
	}
	pod := podhelper.Pod{Name: name, Path: opts.Path}
	if i, ok := p.podIndex[name]; ok {
		log.Warnf("pod %s is declared again: path %q -> %q", name, p.pods[i].Path, opts.Path)
		p.pods[i] = pod
		return nil
	}
	p.podIndex[name] = len(p.pods)
	p.pods = append(p.pods, pod)
	return nil
}

// Pods returns registered pods in declaration order.
func (p *Podfile) Pods() []podhelper.Pod {
	return append([]podhelper.Pod(nil), p.pods...)
}

// Targets returns declared targets in declaration order.
func (p *Podfile) Targets() []*podhelper.Target {
	return append([]*podhelper.Target(nil), p.targets...)
}

// Load evaluates Podfile fname, and runs its post_install hook if defined.
// If src is nil, it reads fname.
func Load(ctx context.Context, fname string, src []byte, cfg podhelper.Config) (*Podfile, error) {
	if src == nil {
		var err error
		src, err = os.ReadFile(fname)
		if err != nil {
			return nil, err
		}
	}
	p := New(cfg)
	thread := &starlark.Thread{
		Name: "podfile",
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
	}
	globals, err := starlark.ExecFile(thread, fname, src, p.builtins(ctx))
	if err != nil {
		logEvalError(thread, fname, err)
		return nil, err
	}
	hook, ok := globals[postInstallHook]
	if !ok {
		return p, nil
	}
	fn, ok := hook.(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s %s is not callable in %s", postInstallHook, hook.Type(), fname)
	}
	targets := make([]starlark.Value, 0, len(p.targets))
	for _, t := range p.targets {
		targets = append(targets, &starTarget{t: t})
	}
	thread.Name = postInstallHook
	_, err = starlark.Call(thread, fn, starlark.Tuple{starlark.NewList(targets)}, nil)
	if err != nil {
		logEvalError(thread, fname, err)
		return nil, fmt.Errorf("failed to run %s in %s: %w", postInstallHook, fname, err)
	}
	return p, nil
}

func logEvalError(thread *starlark.Thread, fname string, err error) {
	log.Warnf("thread:%s failed to exec file %s: %v", thread.Name, fname, err)
	var eerr *starlark.EvalError
	if errors.As(err, &eerr) {
		log.Warnf("stacktrace:\n%s", eerr.Backtrace())
	}
}
