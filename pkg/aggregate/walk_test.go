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

package aggregate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWalkEnv(t *testing.T, ignore []string) (*Packer, string) {
	t.Helper()
	root := t.TempDir()
	p, err := New(Options{Root: root, IgnorePatterns: ignore})
	require.NoError(t, err)
	return p, root
}

func mkFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(rel+"\n"), 0o644))
}

func relSet(t *testing.T, root string, abs []string) map[string]bool {
	t.Helper()
	out := map[string]bool{}
	for _, a := range abs {
		rel, err := filepath.Rel(root, a)
		require.NoError(t, err)
		out[filepath.ToSlash(rel)] = true
	}
	return out
}

func TestExpandDirectoryDepthFirst(t *testing.T) {
	p, root := createWalkEnv(t, nil)
	mkFile(t, root, "dir/a.txt")
	mkFile(t, root, "dir/sub/b.txt")
	mkFile(t, root, "dir/sub/deep/c.txt")
	mkFile(t, root, "outside.txt")

	files, err := p.expandDirectory(context.Background(), filepath.Join(root, "dir"))
	require.NoError(t, err)

	got := relSet(t, root, files)
	assert.Equal(t, map[string]bool{
		"dir/a.txt":          true,
		"dir/sub/b.txt":      true,
		"dir/sub/deep/c.txt": true,
	}, got)
}

func TestExpandDirectorySkipsIgnoredSubtrees(t *testing.T) {
	p, root := createWalkEnv(t, []string{"**/node_modules", "**/*.log"})
	mkFile(t, root, "dir/keep.go")
	mkFile(t, root, "dir/noise.log")
	mkFile(t, root, "dir/node_modules/dep/index.js")

	files, err := p.expandDirectory(context.Background(), filepath.Join(root, "dir"))
	require.NoError(t, err)

	got := relSet(t, root, files)
	assert.Equal(t, map[string]bool{"dir/keep.go": true}, got)
}

func TestExpandDirectorySingleStarDoesNotCrossSlash(t *testing.T) {
	p, root := createWalkEnv(t, []string{"*.log"})
	mkFile(t, root, "dir/nested.log")

	// A bare * only matches one path segment, so a root-relative
	// "dir/nested.log" is not ignored by "*.log".
	files, err := p.expandDirectory(context.Background(), filepath.Join(root, "dir"))
	require.NoError(t, err)

	got := relSet(t, root, files)
	assert.Equal(t, map[string]bool{"dir/nested.log": true}, got)
}

func TestExpandDirectoryIgnorePatternIsRootRelative(t *testing.T) {
	p, root := createWalkEnv(t, []string{"dir/secret"})
	mkFile(t, root, "dir/secret/hidden.txt")
	mkFile(t, root, "dir/visible.txt")

	files, err := p.expandDirectory(context.Background(), filepath.Join(root, "dir"))
	require.NoError(t, err)

	got := relSet(t, root, files)
	assert.Equal(t, map[string]bool{"dir/visible.txt": true}, got)
}

func TestExpandDirectoryMissingDirErrors(t *testing.T) {
	p, root := createWalkEnv(t, nil)

	_, err := p.expandDirectory(context.Background(), filepath.Join(root, "nope"))
	require.Error(t, err)
}
