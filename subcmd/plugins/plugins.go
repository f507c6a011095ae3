// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package plugins is plugins subcommand to list flutter plugin pods.
package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/flutter-tools/podhelper/podhelper"
	"github.com/flutter-tools/podhelper/subcmd/helperflags"
)

const usage = `list flutter plugin pods

 $ podhelper plugins -helper_dir ios/Flutter [-app_path ios] [-json]

prints each plugin in .flutter-plugins-dependencies of the flutter root
as "<name> <path>", where path is <app_path>/../<plugin path>.
`

// Cmd returns the Command for the `plugins` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "plugins [-helper_dir <dir>] [-app_path <dir>] [-json]",
		ShortDesc: "list flutter plugin pods",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase
	flags helperflags.Flags

	appPath string
	json    bool
}

func (c *run) init() {
	c.flags.Register(&c.Flags)
	c.Flags.StringVar(&c.appPath, "app_path", "", "iOS application path. default to <helper_dir>/..")
	c.Flags.BoolVar(&c.json, "json", false, "print in json format")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer) error {
	cfg, err := c.flags.Config()
	if err != nil {
		return err
	}
	pods, err := podhelper.PluginPods(ctx, cfg, c.appPath)
	if err != nil {
		return err
	}
	if c.json {
		if pods == nil {
			pods = []podhelper.Pod{}
		}
		buf, err := json.MarshalIndent(pods, "", " ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", buf)
		return err
	}
	for _, p := range pods {
		_, err := fmt.Fprintf(w, "%s %s\n", p.Name, p.Path)
		if err != nil {
			return err
		}
	}
	return nil
}
