// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package flutterroot is flutter_root subcommand to print the flutter SDK root.
package flutterroot

import (
	"context"
	"fmt"
	"os"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/flutter-tools/podhelper/podhelper"
	"github.com/flutter-tools/podhelper/subcmd/helperflags"
)

// Cmd returns the Command for the `flutter_root` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "flutter_root [-helper_dir <dir>]",
		ShortDesc: "print flutter SDK root",
		LongDesc:  "Print FLUTTER_ROOT recorded in Flutter/Generated.xcconfig.",
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.flags.Register(&c.Flags)
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase
	flags helperflags.Flags
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if len(args) != 0 {
		fmt.Fprintf(a.GetErr(), "%s: position arguments not expected\n", a.GetName())
		return 1
	}
	err := c.run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context) error {
	cfg, err := c.flags.Config()
	if err != nil {
		return err
	}
	root, err := podhelper.FlutterRoot(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Println(root)
	return nil
}
