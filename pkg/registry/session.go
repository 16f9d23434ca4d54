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

package registry

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 sessionState is the on-disk shape of a saved registry
type sessionState struct {
	LastUpdated time.Time `json:"last_updated"`
	Root        string    `json:"root"`
	Entries     []Entry   `json:"entries"`
}

// 💾 Session persists a registry between CLI invocations. It is the
// restorable counterpart of the in-memory list; the panel surface works
// fine without one.
type Session struct {
	path string
}

// 🏭 NewSession creates a session stored at the given path
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Path returns the session file location
func (s *Session) Path() string {
	return s.path
}

// 📖 Load restores saved entries into the registry. A missing session file
// is not an error: the registry simply starts empty. Entries whose saved
// root does not match the registry's root are discarded wholesale, since
// their keys would be meaningless.
func (s *Session) Load(ctx context.Context, reg *Registry) error {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", s.path).Msg("no session file, starting empty")
		return nil
	}
	if err != nil {
		return errors.Errorf("reading session file: %w", err)
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return errors.Errorf("parsing session file: %w", err)
	}

	if state.Root != reg.Root() {
		logger.Warn().
			Str("session_root", state.Root).
			Str("registry_root", reg.Root()).
			Msg("session root mismatch, discarding saved entries")
		return nil
	}

	locators := make([]string, 0, len(state.Entries))
	for _, e := range state.Entries {
		locators = append(locators, e.Key)
	}

	// Re-resolving instead of trusting the blob re-checks existence and
	// kind, so stale session entries degrade the same way missing pack
	// entries do.
	res := reg.Add(ctx, locators)
	if len(res.Failures) > 0 {
		logger.Warn().Int("count", len(res.Failures)).Msg("dropped stale session entries")
	}
	return nil
}

// 📝 Save writes the registry's current entries to the session file,
// creating the containing directory if needed. The write goes through a
// temp file and rename so an interrupted save never corrupts the session.
func (s *Session) Save(ctx context.Context, reg *Registry) error {
	logger := zerolog.Ctx(ctx)

	state := sessionState{
		LastUpdated: time.Now(),
		Root:        reg.Root(),
		Entries:     reg.Snapshot(),
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Errorf("creating session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Errorf("replacing session file: %w", err)
	}

	logger.Debug().Str("path", s.path).Int("entries", len(state.Entries)).Msg("session saved")
	return nil
}
