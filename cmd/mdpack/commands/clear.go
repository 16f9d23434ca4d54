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
	"github.com/spf13/cobra"
	"github.com/walteh/mdpack/cmd/mdpack/opts"
	"gitlab.com/tozd/go/errors"
)

// NewClearCmd creates the clear command
func NewClearCmd(load opts.LoadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the working list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o, err := load(ctx)
			if err != nil {
				return err
			}
			if err := o.Session.Load(ctx, o.Registry); err != nil {
				return errors.Errorf("loading session: %w", err)
			}

			if !o.Registry.Clear() {
				o.Printer.Info("List is already empty")
				return nil
			}
			o.Printer.Success("List cleared")

			if err := o.Session.Save(ctx, o.Registry); err != nil {
				return errors.Errorf("saving session: %w", err)
			}
			return nil
		},
	}
}
