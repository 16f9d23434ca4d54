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

// Package panel is the message-driven controller a host surface (editor
// integration, stdio bridge) talks to. It owns one registry and one packer
// and pushes full entry snapshots after every mutation.
package panel

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/mdpack/pkg/aggregate"
	"github.com/walteh/mdpack/pkg/registry"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/semaphore"
)

// 🖼️ Surface receives outbound pushes from the controller
type Surface interface {
	// PushEntries delivers a full snapshot, optionally with transient
	// status text
	PushEntries(ctx context.Context, msg EntriesMessage) error

	// PushStatus delivers transient status text only
	PushStatus(ctx context.Context, msg StatusMessage) error
}

// 🔧 Options configures a controller
type Options struct {
	Registry *registry.Registry
	Packer   *aggregate.Packer
	Surface  Surface
}

// 🎮 Controller dispatches inbound messages onto the registry and packer
type Controller struct {
	registry *registry.Registry
	packer   *aggregate.Packer
	surface  Surface

	// packGuard rejects a pack while another is in flight
	packGuard *semaphore.Weighted
}

// 🏭 New creates a controller with the given options
func New(opts Options) (*Controller, error) {
	if opts.Registry == nil {
		return nil, errors.Errorf("registry is required")
	}
	if opts.Packer == nil {
		return nil, errors.Errorf("packer is required")
	}
	if opts.Surface == nil {
		return nil, errors.Errorf("surface is required")
	}
	return &Controller{
		registry:  opts.Registry,
		packer:    opts.Packer,
		surface:   opts.Surface,
		packGuard: semaphore.NewWeighted(1),
	}, nil
}

// 📬 HandleMessage dispatches one inbound message. Operational failures
// (bad locators, pack preconditions, I/O errors) are reported to the
// surface and logged, never returned: the only returned errors are an
// unknown op or a surface push failure.
func (c *Controller) HandleMessage(ctx context.Context, msg Inbound) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("op", msg.Op).Msg("handling message")

	switch msg.Op {
	case OpAdd:
		return c.handleAdd(ctx, msg.URIs)
	case OpRemove:
		return c.handleRemove(ctx, msg.Key)
	case OpClear:
		return c.handleClear(ctx)
	case OpPack:
		return c.handlePack(ctx)
	default:
		return errors.Errorf("unknown op %q", msg.Op)
	}
}

func (c *Controller) handleAdd(ctx context.Context, uris []string) error {
	res := c.registry.Add(ctx, uris)

	status := ""
	if n := len(res.Added); n > 0 {
		status = fmt.Sprintf("Added %d item(s)", n)
	}
	if n := len(res.Failures); n > 0 {
		if status != "" {
			status += ", "
		}
		status += fmt.Sprintf("%d item(s) could not be added", n)
	}
	return c.pushSnapshot(ctx, status)
}

func (c *Controller) handleRemove(ctx context.Context, key string) error {
	c.registry.Remove(key)
	return c.pushSnapshot(ctx, "")
}

func (c *Controller) handleClear(ctx context.Context) error {
	if !c.registry.Clear() {
		return c.surface.PushStatus(ctx, StatusMessage{Op: OpStatus, Text: "List is already empty"})
	}
	return c.pushSnapshot(ctx, "List cleared")
}

func (c *Controller) handlePack(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if !c.packGuard.TryAcquire(1) {
		return c.surface.PushStatus(ctx, StatusMessage{Op: OpStatus, Text: "A pack is already in progress"})
	}
	defer c.packGuard.Release(1)

	if err := c.surface.PushStatus(ctx, StatusMessage{Op: OpStatus, Text: "Packing..."}); err != nil {
		return err
	}

	// Snapshot before packing so concurrent add/remove cannot race the
	// serialization loop.
	res, err := c.packer.Pack(ctx, c.registry.Snapshot())
	if err != nil {
		logger.Error().Err(err).Msg("pack failed")
		return c.surface.PushStatus(ctx, StatusMessage{Op: OpStatus, Text: packFailureText(err)})
	}

	status := fmt.Sprintf("Packed %d file(s) into %s", res.Files, res.OutputPath)
	if res.SkippedMissing > 0 {
		status += fmt.Sprintf(" (%d missing item(s) skipped)", res.SkippedMissing)
		// The prune already happened inside the packer; the snapshot
		// push below reflects it.
	}
	return c.pushSnapshot(ctx, status)
}

// pushSnapshot sends the full entry list, with optional status text
func (c *Controller) pushSnapshot(ctx context.Context, status string) error {
	entries := c.registry.Snapshot()
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			Key:          e.Key,
			RelativePath: e.RelativePath,
			Type:         e.Kind.String(),
		})
	}
	return c.surface.PushEntries(ctx, EntriesMessage{Op: OpEntries, Entries: views, Status: status})
}

// packFailureText maps the pack error taxonomy to short user-facing text
func packFailureText(err error) string {
	switch {
	case errors.Is(err, aggregate.ErrEmptyList):
		return "Nothing to pack: the list is empty"
	case errors.Is(err, aggregate.ErrNoRoot):
		return "Nothing to pack: no project root available"
	case errors.Is(err, aggregate.ErrNothingToPack):
		return "Nothing to pack: all items are missing"
	default:
		return "Pack failed, see the log for details"
	}
}
