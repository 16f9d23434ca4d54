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

package panel_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mdpack/pkg/aggregate"
	"github.com/walteh/mdpack/pkg/panel"
	"github.com/walteh/mdpack/pkg/registry"
)

func TestServeRoundTrip(t *testing.T) {
	ctx, _, _, _ := createTestEnv(t)

	// Fresh controller wired to a stdio surface instead of the fake
	root := t.TempDir()
	reg, err := registry.New(root)
	require.NoError(t, err)
	packer, err := aggregate.New(aggregate.Options{Root: root, Pruner: reg})
	require.NoError(t, err)

	var out bytes.Buffer
	ctrl, err := panel.New(panel.Options{
		Registry: reg,
		Packer:   packer,
		Surface:  panel.NewStdioSurface(&out),
	})
	require.NoError(t, err)

	input := strings.Join([]string{
		`{"op":"clear"}`,
		`not json at all`,
		`{"op":"add","uris":["does-not-exist.txt"]}`,
	}, "\n") + "\n"

	require.NoError(t, panel.Serve(ctx, ctrl, strings.NewReader(input)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2, "malformed line is skipped, two messages pushed")

	var status panel.StatusMessage
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &status))
	assert.Equal(t, panel.OpStatus, status.Op)
	assert.Equal(t, "List is already empty", status.Text)

	var entries panel.EntriesMessage
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entries))
	assert.Equal(t, panel.OpEntries, entries.Op)
	assert.Empty(t, entries.Entries)
	assert.Contains(t, entries.Status, "could not be added")
}
