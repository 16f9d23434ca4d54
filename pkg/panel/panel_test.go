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
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mdpack/pkg/aggregate"
	"github.com/walteh/mdpack/pkg/panel"
	"github.com/walteh/mdpack/pkg/registry"
)

// 🧪 fakeSurface records every push it receives
type fakeSurface struct {
	mu       sync.Mutex
	entries  []panel.EntriesMessage
	statuses []panel.StatusMessage
}

func (f *fakeSurface) PushEntries(_ context.Context, msg panel.EntriesMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, msg)
	return nil
}

func (f *fakeSurface) PushStatus(_ context.Context, msg panel.StatusMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, msg)
	return nil
}

func (f *fakeSurface) lastEntries(t *testing.T) panel.EntriesMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.entries)
	return f.entries[len(f.entries)-1]
}

func (f *fakeSurface) lastStatus(t *testing.T) panel.StatusMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.statuses)
	return f.statuses[len(f.statuses)-1]
}

// 🧪 createTestEnv creates a root with files, a controller and its fake
// surface
func createTestEnv(t *testing.T) (context.Context, string, *panel.Controller, *fakeSurface) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("print(1)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("package b\n"), 0o644))

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	reg, err := registry.New(root)
	require.NoError(t, err)

	packer, err := aggregate.New(aggregate.Options{Root: root, Pruner: reg})
	require.NoError(t, err)

	surface := &fakeSurface{}
	ctrl, err := panel.New(panel.Options{Registry: reg, Packer: packer, Surface: surface})
	require.NoError(t, err)

	return ctx, root, ctrl, surface
}

func TestAddPushesSnapshotWithStatus(t *testing.T) {
	ctx, _, ctrl, surface := createTestEnv(t)

	err := ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpAdd, URIs: []string{"a.py", "missing.txt"}})
	require.NoError(t, err)

	msg := surface.lastEntries(t)
	require.Len(t, msg.Entries, 1)
	assert.Equal(t, "a.py", msg.Entries[0].RelativePath)
	assert.Equal(t, "file", msg.Entries[0].Type)
	assert.Contains(t, msg.Status, "Added 1 item(s)")
	assert.Contains(t, msg.Status, "1 item(s) could not be added")
}

func TestRemovePushesSnapshot(t *testing.T) {
	ctx, root, ctrl, surface := createTestEnv(t)

	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpAdd, URIs: []string{"a.py"}}))
	key := filepath.Join(root, "a.py")
	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpRemove, Key: key}))

	assert.Empty(t, surface.lastEntries(t).Entries)
}

func TestClearStatuses(t *testing.T) {
	ctx, _, ctrl, surface := createTestEnv(t)

	// Clear on an empty list is distinguishable from a successful clear
	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpClear}))
	assert.Equal(t, "List is already empty", surface.lastStatus(t).Text)

	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpAdd, URIs: []string{"a.py"}}))
	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpClear}))
	msg := surface.lastEntries(t)
	assert.Empty(t, msg.Entries)
	assert.Equal(t, "List cleared", msg.Status)
}

func TestPackEmptyListReportsStatus(t *testing.T) {
	ctx, root, ctrl, surface := createTestEnv(t)

	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpPack}))
	assert.Equal(t, "Nothing to pack: the list is empty", surface.lastStatus(t).Text)

	_, err := os.Stat(filepath.Join(root, "search"))
	assert.True(t, os.IsNotExist(err))
}

func TestPackSuccessReportsOutputPath(t *testing.T) {
	ctx, root, ctrl, surface := createTestEnv(t)

	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpAdd, URIs: []string{"a.py", "b.go"}}))
	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpPack}))

	msg := surface.lastEntries(t)
	assert.Contains(t, msg.Status, "Packed 2 file(s) into ")
	assert.Contains(t, msg.Status, filepath.Join(root, "search"))
	require.Len(t, msg.Entries, 2)
}

func TestPackMissingEntryPrunedAndCounted(t *testing.T) {
	ctx, root, ctrl, surface := createTestEnv(t)

	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpAdd, URIs: []string{"a.py", "b.go"}}))
	require.NoError(t, os.Remove(filepath.Join(root, "b.go")))
	require.NoError(t, ctrl.HandleMessage(ctx, panel.Inbound{Op: panel.OpPack}))

	msg := surface.lastEntries(t)
	assert.Contains(t, msg.Status, "1 missing item(s) skipped")
	require.Len(t, msg.Entries, 1)
	assert.Equal(t, "a.py", msg.Entries[0].RelativePath)
}

func TestUnknownOpIsAnError(t *testing.T) {
	ctx, _, ctrl, _ := createTestEnv(t)

	err := ctrl.HandleMessage(ctx, panel.Inbound{Op: "zip"})
	require.Error(t, err)
}
