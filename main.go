// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// podhelper registers flutter plugins as pods of an iOS host app.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"github.com/flutter-tools/podhelper/subcmd/buildsettings"
	"github.com/flutter-tools/podhelper/subcmd/flutterroot"
	"github.com/flutter-tools/podhelper/subcmd/help"
	"github.com/flutter-tools/podhelper/subcmd/install"
	"github.com/flutter-tools/podhelper/subcmd/plugins"
	"github.com/flutter-tools/podhelper/subcmd/version"
)

const versionID = "v1.0.0"

var logLevel = flag.String("log_level", "warn", "log level: debug, info, warn, error")

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "podhelper",
		Title: "Flutter CocoaPods helper",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			flutterroot.Cmd(),
			plugins.Cmd(),
			install.Cmd(),
			buildsettings.Cmd(),

			help.Cmd(),
			version.Cmd(versionID),
		},
	}
}

func main() {
	os.Exit(podhelperMain())
}

func podhelperMain() int {
	flag.Parse()
	err := setupLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	return subcommands.Run(getApplication(ctx), flag.Args())
}

func setupLogger(w io.Writer, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "podhelper",
	})
	log.SetDefault(logger.With("invocation_id", uuid.New().String()))
	return nil
}
