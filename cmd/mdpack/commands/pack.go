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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/mdpack/cmd/mdpack/opts"
	"github.com/walteh/mdpack/pkg/aggregate"
	"gitlab.com/tozd/go/errors"
)

// NewPackCmd creates the pack command
func NewPackCmd(load opts.LoadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "pack",
		Short: "Flatten the working list into one markdown bundle",
		Long: `Pack validates every item in the list, expands directories
recursively, and writes a single markdown document with one fenced
code block per file under <root>/<output_dir>/bundle-<timestamp>.md.
Items whose backing file no longer exists are dropped from the list.`,
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

			res, err := o.Packer.Pack(ctx, o.Registry.Snapshot())
			if err != nil {
				o.Printer.Error("%s", packFailureText(err))
				zerolog.Ctx(ctx).Debug().Err(err).Msg("pack failed")
				return errors.Errorf("packing: %w", err)
			}

			if res.SkippedMissing > 0 {
				o.Printer.Warning("%d missing item(s) skipped and removed from the list", res.SkippedMissing)
				if err := o.Session.Save(ctx, o.Registry); err != nil {
					return errors.Errorf("saving session: %w", err)
				}
			}
			o.Printer.Success("Packed %d file(s) into %s", res.Files, res.OutputPath)
			return nil
		},
	}
}

// packFailureText maps the pack error taxonomy to short user-facing text
func packFailureText(err error) string {
	switch {
	case errors.Is(err, aggregate.ErrEmptyList):
		return "The list is empty, add some files first"
	case errors.Is(err, aggregate.ErrNoRoot):
		return "No project root available"
	case errors.Is(err, aggregate.ErrNothingToPack):
		return "Every item in the list is missing, nothing to pack"
	default:
		return "Pack failed, run with --debug for details"
	}
}
