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

package panel

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 StdioSurface writes outbound messages as JSON lines. It is how an
// editor integration hosts the panel: one JSON message per line in each
// direction.
type StdioSurface struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// 🏭 NewStdioSurface creates a surface writing to w
func NewStdioSurface(w io.Writer) *StdioSurface {
	return &StdioSurface{enc: json.NewEncoder(w)}
}

// PushEntries writes a snapshot message as one JSON line
func (s *StdioSurface) PushEntries(_ context.Context, msg EntriesMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(msg); err != nil {
		return errors.Errorf("encoding entries message: %w", err)
	}
	return nil
}

// PushStatus writes a status message as one JSON line
func (s *StdioSurface) PushStatus(_ context.Context, msg StatusMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(msg); err != nil {
		return errors.Errorf("encoding status message: %w", err)
	}
	return nil
}

// 🏃 Serve reads inbound JSON lines from r until EOF or context
// cancellation, dispatching each onto the controller. Malformed lines are
// logged and skipped so one bad message cannot wedge the host.
func Serve(ctx context.Context, c *Controller, r io.Reader) error {
	logger := zerolog.Ctx(ctx)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("serving panel: %w", err)
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg Inbound
		if err := json.Unmarshal(line, &msg); err != nil {
			logger.Warn().Err(err).Msg("skipping malformed message")
			continue
		}

		if err := c.HandleMessage(ctx, msg); err != nil {
			logger.Warn().Str("op", msg.Op).Err(err).Msg("message handling failed")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Errorf("reading panel input: %w", err)
	}
	return nil
}
