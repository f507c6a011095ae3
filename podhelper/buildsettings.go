// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package podhelper

// Target is a pod target.
type Target struct {
	Name                string                `json:"name"`
	BuildConfigurations []*BuildConfiguration `json:"build_configurations"`
}

// BuildConfiguration is a build configuration of a target, e.g. Debug.
type BuildConfiguration struct {
	Name          string            `json:"name"`
	BuildSettings map[string]string `json:"build_settings"`
}

// AdditionalBuildSettings sets build settings flutter requires
// on every build configuration of t.
func AdditionalBuildSettings(t *Target) {
	for _, config := range t.BuildConfigurations {
		if config.BuildSettings == nil {
			config.BuildSettings = make(map[string]string)
		}
		config.BuildSettings["ENABLE_BITCODE"] = "NO"
	}
}
