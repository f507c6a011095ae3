// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package install is install subcommand to evaluate a Podfile.
package install

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/flutter-tools/podhelper/podfile"
	"github.com/flutter-tools/podhelper/podhelper"
	"github.com/flutter-tools/podhelper/subcmd/helperflags"
)

const usage = `evaluate Podfile and print resolved pods

 $ podhelper install -helper_dir ios/Flutter [-podfile ios/Podfile.star] [-o pods.json]

Podfile is a Starlark file. It can use
  pod(name, path=None)
  target(name, configurations=["Debug", "Profile", "Release"])
  flutter_root()
  parse_kv_file(fname)
  flutter_install_ios_plugin_pods(app_path=None)
  flutter_install_all_ios_pods(app_path=None)
  flutter_additional_ios_build_settings(target)
  path.join(...), path.dir(fname), path.base(fname)
  helper_dir
and define post_install(targets) that is called after the evaluation.
`

// Result is the output of install.
type Result struct {
	Pods    []podhelper.Pod     `json:"pods"`
	Targets []*podhelper.Target `json:"targets"`
}

// Cmd returns the Command for the `install` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "install [-helper_dir <dir>] [-podfile <file>] [-o <file>]",
		ShortDesc: "evaluate Podfile",
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

	podfile string
	output  string
}

func (c *run) init() {
	c.flags.Register(&c.Flags)
	c.Flags.StringVar(&c.podfile, "podfile", "", "Starlark Podfile. default to <helper_dir>/../Podfile.star")
	c.Flags.StringVar(&c.output, "o", "", "output json file. print to stdout if empty")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, os.Stdout)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer) error {
	cfg, err := c.flags.Config()
	if err != nil {
		return err
	}
	fname := c.podfile
	if fname == "" {
		fname = filepath.Join(cfg.AppPath, "Podfile.star")
	}
	p, err := podfile.Load(ctx, fname, nil, cfg)
	if err != nil {
		return err
	}
	result := Result{
		Pods:    p.Pods(),
		Targets: p.Targets(),
	}
	if result.Pods == nil {
		result.Pods = []podhelper.Pod{}
	}
	if result.Targets == nil {
		result.Targets = []*podhelper.Target{}
	}
	buf, err := json.MarshalIndent(result, "", " ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	if c.output == "" {
		_, err = w.Write(buf)
		return err
	}
	err = renameio.WriteFile(c.output, buf, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", c.output, err)
	}
	log.Infof("wrote %d pods, %d targets to %s", len(result.Pods), len(result.Targets), c.output)
	return nil
}
