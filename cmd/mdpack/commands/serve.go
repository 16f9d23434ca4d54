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

package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/mdpack/cmd/mdpack/opts"
	"github.com/walteh/mdpack/pkg/panel"
	"gitlab.com/tozd/go/errors"
)

// NewServeCmd creates the serve command
func NewServeCmd(load opts.LoadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the panel protocol over stdio",
		Long: `Serve speaks the panel protocol as JSON lines: inbound messages
({"op":"add","uris":[...]}, {"op":"remove","key":...}, {"op":"clear"},
{"op":"pack"}) on stdin, outbound snapshot and status pushes on stdout.
An editor integration hosts mdpack this way.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, err := load(ctx)
			if err != nil {
				return err
			}
			if err := o.Session.Load(ctx, o.Registry); err != nil {
				return errors.Errorf("loading session: %w", err)
			}

			surface := panel.NewStdioSurface(cmd.OutOrStdout())
			ctrl, err := panel.New(panel.Options{
				Registry: o.Registry,
				Packer:   o.Packer,
				Surface:  surface,
			})
			if err != nil {
				return errors.Errorf("creating panel controller: %w", err)
			}

			if err := panel.Serve(ctx, ctrl, os.Stdin); err != nil {
				return errors.Errorf("serving panel: %w", err)
			}

			if err := o.Session.Save(ctx, o.Registry); err != nil {
				return errors.Errorf("saving session: %w", err)
			}
			return nil
		},
	}
}
