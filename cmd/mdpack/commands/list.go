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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/mdpack/cmd/mdpack/opts"
	"github.com/walteh/mdpack/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates the list command
func NewListCmd(load opts.LoadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the working list in insertion order",
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

			entries := o.Registry.Snapshot()
			if len(entries) == 0 {
				o.Printer.Info("List is empty")
				return nil
			}
			for i, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), ui.FormatEntryRow(i, entry))
			}
			return nil
		},
	}
}
