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

// Package registry owns the ordered set of entries the user has collected
// for packing. All mutation goes through a single mutex, so one registry
// instance is safe to share between a panel controller and the packer.
package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrOutsideRoot means a locator resolved to a path outside the project root
	ErrOutsideRoot = errors.New("path is outside the project root")

	// ErrUnsupportedKind means a locator resolved to neither a regular file
	// nor a directory (or to nothing at all)
	ErrUnsupportedKind = errors.New("path is neither a file nor a directory")
)

// 🗂️ Registry is an insertion-ordered, deduplicated set of entries
type Registry struct {
	mu      sync.Mutex
	root    string
	entries map[string]Entry
	order   []string
}

// 🏭 New creates an empty registry rooted at the given project root.
// The root must be an absolute path.
func New(root string) (*Registry, error) {
	if root == "" {
		return nil, errors.Errorf("project root is required")
	}
	if !filepath.IsAbs(root) {
		return nil, errors.Errorf("project root %q is not absolute", root)
	}
	return &Registry{
		root:    filepath.Clean(root),
		entries: map[string]Entry{},
	}, nil
}

// Root returns the project root the registry resolves against
func (r *Registry) Root() string {
	return r.root
}

// ⚠️ ResolutionFailure records one locator that could not be added
type ResolutionFailure struct {
	Locator string
	Err     error
}

// 📋 AddResult summarizes one Add batch
type AddResult struct {
	Added      []Entry
	Duplicates int
	Failures   []ResolutionFailure
}

// ➕ Add resolves each locator and inserts the ones that survive. Duplicates
// (already in the registry or earlier in the same batch) are counted and
// skipped. Resolution failures are collected per locator and never abort the
// rest of the batch.
func (r *Registry) Add(ctx context.Context, locators []string) AddResult {
	logger := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	var res AddResult
	for _, loc := range locators {
		entry, err := r.resolve(loc)
		if err != nil {
			logger.Warn().Str("locator", loc).Err(err).Msg("skipping locator")
			res.Failures = append(res.Failures, ResolutionFailure{Locator: loc, Err: err})
			continue
		}
		if _, ok := r.entries[entry.Key]; ok {
			res.Duplicates++
			continue
		}
		r.entries[entry.Key] = entry
		r.order = append(r.order, entry.Key)
		res.Added = append(res.Added, entry)
		logger.Debug().Str("key", entry.Key).Stringer("kind", entry.Kind).Msg("entry added")
	}
	return res
}

// resolve turns a locator into an entry: canonical absolute key, root
// containment check, kind from a stat call.
func (r *Registry) resolve(locator string) (Entry, error) {
	if locator == "" {
		return Entry{}, errors.Errorf("empty locator: %w", ErrUnsupportedKind)
	}

	abs := locator
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Entry{}, errors.Errorf("resolving %q: %w", locator, ErrOutsideRoot)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Entry{}, errors.Errorf("resolving %q: %w", locator, ErrUnsupportedKind)
	}

	kind := KindUnknown
	switch {
	case info.Mode().IsRegular():
		kind = KindFile
	case info.IsDir():
		kind = KindDirectory
	default:
		return Entry{}, errors.Errorf("resolving %q: %w", locator, ErrUnsupportedKind)
	}

	return Entry{
		Key:          abs,
		RelativePath: filepath.ToSlash(rel),
		Kind:         kind,
	}, nil
}

// ➖ Remove deletes the entry with the given key. Removing an absent key is
// a silent no-op; the boolean reports whether anything changed.
func (r *Registry) Remove(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(key)
}

// 🧹 Prune removes every key in the list, returning how many were present.
// Used by the packer to drop entries whose backing resource disappeared.
func (r *Registry) Prune(keys []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, key := range keys {
		if r.removeLocked(key) {
			removed++
		}
	}
	return removed
}

func (r *Registry) removeLocked(key string) bool {
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// 🧼 Clear empties the registry. The boolean reports whether any entries
// were actually removed, so callers can tell a real clear from "already
// empty".
func (r *Registry) Clear() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.order) == 0 {
		return false
	}
	r.entries = map[string]Entry{}
	r.order = nil
	return true
}

// Len returns the number of entries
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// 📸 Snapshot returns the entries in insertion order. The returned slice is
// a copy; the packer iterates it without holding the registry lock.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}
