// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package podhelper

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Pod is a path-based pod dependency.
type Pod struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// PodOptions are options of a pod declaration.
type PodOptions struct {
	// Path is the local directory that contains the podspec.
	Path string
}

// PodRegistry registers pod dependencies, e.g. a Podfile.
type PodRegistry interface {
	Pod(name string, opts PodOptions) error
}

// PluginPods returns pods for the flutter plugins listed in the plugin
// manifest under the flutter root.
// If appPath is empty, cfg.AppPath is used.
// A manifest without the "plugins" entry is an error. A missing
// manifest parses as empty, so it is the same error.
func PluginPods(ctx context.Context, cfg Config, appPath string) ([]Pod, error) {
	if appPath == "" {
		appPath = cfg.AppPath
	}
	root, err := FlutterRoot(ctx, cfg)
	if err != nil {
		return nil, err
	}
	fname := filepath.Join(root, PluginsDependenciesFile)
	m, err := ParseKVFile(ctx, cfg, fname)
	if err != nil {
		return nil, err
	}
	plugins, err := m.Sub(pluginsKey)
	if err != nil {
		return nil, fmt.Errorf("bad plugin manifest %s: %w", fname, err)
	}
	var pods []Pod
	for _, name := range plugins.Keys() {
		rel, _ := plugins.Get(name)
		pods = append(pods, Pod{
			Name: name,
			Path: joinPath(appPath, "..", rel),
		})
	}
	return pods, nil
}

// InstallPluginPods registers pods for flutter plugins to reg.
func InstallPluginPods(ctx context.Context, cfg Config, reg PodRegistry, appPath string) error {
	pods, err := PluginPods(ctx, cfg, appPath)
	if err != nil {
		return err
	}
	for _, p := range pods {
		log.Debugf("pod %s path=%s", p.Name, p.Path)
		err := reg.Pod(p.Name, PodOptions{Path: p.Path})
		if err != nil {
			return fmt.Errorf("failed to register pod %s: %w", p.Name, err)
		}
	}
	log.Infof("installed %d plugin pods", len(pods))
	return nil
}

// InstallAllPods registers all pods the flutter app needs to reg.
// Currently it's only plugin pods.
func InstallAllPods(ctx context.Context, cfg Config, reg PodRegistry, appPath string) error {
	return InstallPluginPods(ctx, cfg, reg, appPath)
}
