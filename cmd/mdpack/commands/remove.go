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
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/mdpack/cmd/mdpack/opts"
	"gitlab.com/tozd/go/errors"
)

// NewRemoveCmd creates the remove command
func NewRemoveCmd(load opts.LoadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove one item from the working list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, err := load(ctx)
			if err != nil {
				return err
			}
			if err := o.Session.Load(ctx, o.Registry); err != nil {
				return errors.Errorf("loading session: %w", err)
			}

			// Entry keys are canonical absolute paths; accept a
			// relative path and canonicalize it the same way add does.
			key := args[0]
			if !filepath.IsAbs(key) {
				key = filepath.Join(o.Registry.Root(), key)
			}
			key = filepath.Clean(key)

			if o.Registry.Remove(key) {
				o.Printer.Success("Removed %s, list now has %d item(s)", args[0], o.Registry.Len())
			} else {
				o.Printer.Info("%s was not in the list", args[0])
			}

			if err := o.Session.Save(ctx, o.Registry); err != nil {
				return errors.Errorf("saving session: %w", err)
			}
			return nil
		},
	}
}
