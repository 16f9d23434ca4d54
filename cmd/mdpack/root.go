// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mdpack/cmd/mdpack/commands"
	"github.com/walteh/mdpack/cmd/mdpack/opts"
	"github.com/walteh/mdpack/pkg/aggregate"
	"github.com/walteh/mdpack/pkg/config"
	"github.com/walteh/mdpack/pkg/registry"
	"github.com/walteh/mdpack/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	rootDir    string
	debug      bool
)

// NewRootCmd creates the mdpack root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdpack",
		Short: "Collect files and folders and pack them into one markdown bundle",
		Long: `mdpack keeps a working list of files and directories and flattens it
into a single markdown document: one fenced code block per file, with
its path as the heading. The list persists between invocations in a
session file under the project root.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewAddCmd(newRootOpts),
		commands.NewRemoveCmd(newRootOpts),
		commands.NewClearCmd(newRootOpts),
		commands.NewListCmd(newRootOpts),
		commands.NewPackCmd(newRootOpts),
		commands.NewServeCmd(newRootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".mdpack.hcl", "config file path")
	cmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "project root (default: current directory)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags. Diagnostics go to
// stderr; stdout stays clean for the serve protocol and list output.
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// newRootOpts creates a RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	root, err := resolveRoot(cfg)
	if err != nil {
		return nil, errors.Errorf("resolving project root: %w", err)
	}

	reg, err := registry.New(root)
	if err != nil {
		return nil, errors.Errorf("creating registry: %w", err)
	}

	packer, err := aggregate.New(aggregate.Options{
		Root:           root,
		OutputDir:      cfg.OutputDir,
		Title:          cfg.Title,
		IgnorePatterns: cfg.IgnorePatterns,
		Pruner:         reg,
		Reporter:       ui.NewSpinnerReporter(),
	})
	if err != nil {
		return nil, errors.Errorf("creating packer: %w", err)
	}

	return &opts.RootOpts{
		Config:   cfg,
		Registry: reg,
		Session:  registry.NewSession(filepath.Join(root, cfg.SessionFile)),
		Packer:   packer,
		Printer:  ui.NewPrinter(),
	}, nil
}

// resolveRoot picks the project root: flag, then config, then cwd
func resolveRoot(cfg *config.Config) (string, error) {
	root := rootDir
	if root == "" {
		root = cfg.Root
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Errorf("getting working directory: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("absolutizing root %q: %w", root, err)
	}
	return abs, nil
}
