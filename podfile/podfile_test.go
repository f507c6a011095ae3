// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package podfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flutter-tools/podhelper/podhelper"
	"github.com/flutter-tools/podhelper/toolsupport/xcconfigutil"
)

func setupApp(t *testing.T, manifest string) podhelper.Config {
	t.Helper()
	dir := t.TempDir()
	flutterRoot := filepath.Join(dir, "flutter")
	helperDir := filepath.Join(dir, "app", "ios", "Flutter")
	for _, d := range []string{flutterRoot, helperDir} {
		err := os.MkdirAll(d, 0755)
		if err != nil {
			t.Fatal(err)
		}
	}
	err := os.WriteFile(filepath.Join(helperDir, "Generated.xcconfig"), []byte("FLUTTER_ROOT="+flutterRoot+"\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(flutterRoot, podhelper.PluginsDependenciesFile), []byte(manifest), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return podhelper.NewConfig(helperDir)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	cfg := setupApp(t, "plugins.camera=plugins/camera\nplugins.url_launcher=plugins/url_launcher\n")

	p, err := Load(ctx, "Podfile.star", []byte(`
flutter_install_all_ios_pods("/app/ios")
pod("Firebase", path = "/vendor/Firebase")
pod("GoogleMaps")
target("Runner")
target("RunnerTests", configurations = ["Debug"])

def post_install(targets):
    for t in targets:
        flutter_additional_ios_build_settings(t)
        if t.build_setting("Debug", "ENABLE_BITCODE") != "NO":
            fail("ENABLE_BITCODE is not set on", t.name)
`), cfg)
	if err != nil {
		t.Fatalf("Load(ctx, %q, src, cfg)=_, %v; want nil error", "Podfile.star", err)
	}
	wantPods := []podhelper.Pod{
		{Name: "camera", Path: "/app/ios/../plugins/camera"},
		{Name: "url_launcher", Path: "/app/ios/../plugins/url_launcher"},
		{Name: "Firebase", Path: "/vendor/Firebase"},
		{Name: "GoogleMaps"},
	}
	if diff := cmp.Diff(wantPods, p.Pods()); diff != "" {
		t.Errorf("Pods() -want +got:\n%s", diff)
	}
	noBitcode := map[string]string{"ENABLE_BITCODE": "NO"}
	wantTargets := []*podhelper.Target{
		{
			Name: "Runner",
			BuildConfigurations: []*podhelper.BuildConfiguration{
				{Name: "Debug", BuildSettings: noBitcode},
				{Name: "Profile", BuildSettings: noBitcode},
				{Name: "Release", BuildSettings: noBitcode},
			},
		},
		{
			Name: "RunnerTests",
			BuildConfigurations: []*podhelper.BuildConfiguration{
				{Name: "Debug", BuildSettings: noBitcode},
			},
		},
	}
	if diff := cmp.Diff(wantTargets, p.Targets()); diff != "" {
		t.Errorf("Targets() -want +got:\n%s", diff)
	}
}

func TestLoad_DefaultAppPath(t *testing.T) {
	ctx := context.Background()
	cfg := setupApp(t, "plugins.camera=plugins/camera\n")
	p, err := Load(ctx, "Podfile.star", []byte("flutter_install_ios_plugin_pods()\n"), cfg)
	if err != nil {
		t.Fatalf("Load(ctx, %q, src, cfg)=_, %v; want nil error", "Podfile.star", err)
	}
	want := []podhelper.Pod{
		{Name: "camera", Path: cfg.AppPath + "/../plugins/camera"},
	}
	if diff := cmp.Diff(want, p.Pods()); diff != "" {
		t.Errorf("Pods() -want +got:\n%s", diff)
	}
}

func TestLoad_Redeclare(t *testing.T) {
	ctx := context.Background()
	cfg := setupApp(t, "plugins.camera=plugins/camera\n")
	p, err := Load(ctx, "Podfile.star", []byte(`
pod("a", path = "/first")
pod("b", path = "/b")
pod("a", path = "/second")
`), cfg)
	if err != nil {
		t.Fatalf("Load(ctx, %q, src, cfg)=_, %v; want nil error", "Podfile.star", err)
	}
	want := []podhelper.Pod{
		{Name: "a", Path: "/second"},
		{Name: "b", Path: "/b"},
	}
	if diff := cmp.Diff(want, p.Pods()); diff != "" {
		t.Errorf("Pods() -want +got:\n%s", diff)
	}
}

func TestLoad_ParseKVFile(t *testing.T) {
	ctx := context.Background()
	cfg := setupApp(t, "plugins.camera=plugins/camera\n")
	p, err := Load(ctx, "Podfile.star", []byte(`
deps = parse_kv_file(path.join(flutter_root(), ".flutter-plugins-dependencies"))
pod("camera", path = path.join(helper_dir, "..", deps["plugins.camera"]))

def check_missing():
    missing = parse_kv_file(path.join(flutter_root(), "no-such-file"))
    if len(missing) != 0:
        fail("want empty dict for missing file, got", missing)

check_missing()
`), cfg)
	if err != nil {
		t.Fatalf("Load(ctx, %q, src, cfg)=_, %v; want nil error", "Podfile.star", err)
	}
	want := []podhelper.Pod{
		{Name: "camera", Path: filepath.ToSlash(filepath.Join(cfg.HelperDir, "..", "plugins", "camera"))},
	}
	if diff := cmp.Diff(want, p.Pods()); diff != "" {
		t.Errorf("Pods() -want +got:\n%s", diff)
	}
}

func TestLoad_MissingXcconfig(t *testing.T) {
	ctx := context.Background()
	cfg := podhelper.NewConfig(filepath.Join(t.TempDir(), "ios", "Flutter"))
	_, err := Load(ctx, "Podfile.star", []byte("flutter_install_all_ios_pods()\n"), cfg)
	var ferr *xcconfigutil.MissingFileError
	if !errors.As(err, &ferr) {
		t.Errorf("Load(ctx, %q, src, cfg)=_, %v; want MissingFileError", "Podfile.star", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	cfg := setupApp(t, "plugins.camera=plugins/camera\n")
	for _, tc := range []struct {
		name string
		src  string
	}{
		{
			name: "post_install-not-callable",
			src:  "post_install = 1\n",
		},
		{
			name: "post_install-fails",
			src:  "def post_install(targets):\n    fail(\"boom\")\n",
		},
		{
			name: "empty-pod-name",
			src:  "pod(\"\")\n",
		},
		{
			name: "bad-app-path",
			src:  "flutter_install_all_ios_pods(1)\n",
		},
		{
			name: "bad-target",
			src:  "flutter_additional_ios_build_settings(\"Runner\")\n",
		},
		{
			name: "syntax",
			src:  "pod(\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(ctx, "Podfile.star", []byte(tc.src), cfg)
			if err == nil {
				t.Errorf("Load(ctx, %q, %q, cfg)=_, nil; want error", "Podfile.star", tc.src)
			}
		})
	}
}
