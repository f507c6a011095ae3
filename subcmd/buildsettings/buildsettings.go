// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package buildsettings is build_settings subcommand to apply flutter
// build settings to a pod target.
package buildsettings

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/flutter-tools/podhelper/podhelper"
)

const usage = `apply flutter build settings to a pod target

 $ podhelper build_settings -target target.json [-o out.json]

target.json is
 {
  "name": "Runner",
  "build_configurations": [
   {"name": "Debug", "build_settings": {"KEY": "VALUE", ...}},
   ...
  ]
 }

ENABLE_BITCODE is set to NO in every build configuration.
The result overwrites target.json unless -o is given.
`

// Cmd returns the Command for the `build_settings` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "build_settings -target <file> [-o <file>]",
		ShortDesc: "apply flutter build settings to a pod target",
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

	target string
	output string
}

func (c *run) init() {
	c.Flags.StringVar(&c.target, "target", "", "json file of the pod target")
	c.Flags.StringVar(&c.output, "o", "", "output json file. default to -target")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx)
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

func (c *run) run(ctx context.Context) error {
	if c.target == "" {
		return fmt.Errorf("missing -target: %w", flag.ErrHelp)
	}
	buf, err := os.ReadFile(c.target)
	if err != nil {
		return err
	}
	var target podhelper.Target
	err = json.Unmarshal(buf, &target)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.target, err)
	}
	podhelper.AdditionalBuildSettings(&target)
	buf, err = json.MarshalIndent(target, "", " ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	output := c.output
	if output == "" {
		output = c.target
	}
	err = renameio.WriteFile(output, buf, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Infof("updated %d build configurations of %s in %s", len(target.BuildConfigurations), target.Name, output)
	return nil
}
