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

// Package aggregate flattens a list of registry entries into one markdown
// document: each file becomes a fenced code block under a heading naming
// its path, directories are expanded recursively, and the result is written
// under the project root.
package aggregate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/mdpack/pkg/registry"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Pruner removes entries whose backing resource disappeared between add
// and pack. The registry implements it.
type Pruner interface {
	Prune(keys []string) int
}

// 📈 Reporter receives progress while a pack runs
type Reporter interface {
	Start(ctx context.Context, total int)
	Update(ctx context.Context, done int)
	Finish(ctx context.Context)
}

// 🔧 Options configures a packer
type Options struct {
	// Root is the absolute project root; output paths and relative
	// display paths derive from it
	Root string

	// OutputDir is the root-relative directory receiving bundles
	// (default "search")
	OutputDir string

	// Title is the document title line (default "Code Bundle")
	Title string

	// IgnorePatterns are doublestar globs, matched against root-relative
	// paths, that directory expansion skips
	IgnorePatterns []string

	// Pruner, if set, is told about entries found missing at pack time
	Pruner Pruner

	// Reporter, if set, receives progress notifications
	Reporter Reporter
}

// 📋 Result describes a completed pack
type Result struct {
	// OutputPath is the absolute path of the written bundle
	OutputPath string

	// Files is the number of file sections in the document
	Files int

	// SkippedMissing counts entries pruned because their backing
	// resource no longer exists
	SkippedMissing int
}

// 📦 Packer turns registry snapshots into bundle documents
type Packer struct {
	root     string
	outDir   string
	title    string
	ignore   []string
	pruner   Pruner
	reporter Reporter
	now      func() time.Time
}

// 🏭 New creates a packer with the given options
func New(opts Options) (*Packer, error) {
	if opts.Root != "" && !filepath.IsAbs(opts.Root) {
		return nil, errors.Errorf("root %q is not absolute", opts.Root)
	}
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "search"
	}
	title := opts.Title
	if title == "" {
		title = "Code Bundle"
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = noopReporter{}
	}
	return &Packer{
		root:     opts.Root,
		outDir:   outDir,
		title:    title,
		ignore:   opts.IgnorePatterns,
		pruner:   opts.Pruner,
		reporter: reporter,
		now:      time.Now,
	}, nil
}

// 🏃 Pack runs the full aggregation: guard, validate, serialize, write.
// The entries slice is a snapshot; the registry is only touched through
// the pruner. On success the returned result carries the output path.
func (p *Packer) Pack(ctx context.Context, entries []registry.Entry) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if len(entries) == 0 {
		return nil, errors.Errorf("packing: %w", ErrEmptyList)
	}
	if p.root == "" {
		return nil, errors.Errorf("packing: %w", ErrNoRoot)
	}
	if info, err := os.Stat(p.root); err != nil || !info.IsDir() {
		return nil, errors.Errorf("packing: root %q: %w", p.root, ErrNoRoot)
	}

	// Validation pass: re-check existence, prune what vanished.
	existing, missing := partition(entries)
	if len(missing) > 0 {
		logger.Warn().Int("count", len(missing)).Msg("entries missing at pack time")
		if p.pruner != nil {
			p.pruner.Prune(missing)
		}
	}
	if len(existing) == 0 {
		return nil, errors.Errorf("packing: %w", ErrNothingToPack)
	}

	p.reporter.Start(ctx, len(existing))
	defer p.reporter.Finish(ctx)

	// Serialization pass, sequential in registry order.
	now := p.now()
	var doc strings.Builder
	writeHeader(&doc, p.title, now)

	files := 0
	for i, entry := range existing {
		n, err := p.serializeEntry(ctx, &doc, entry)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Errorf("packing cancelled: %w", ctxErr)
			}
			logger.Error().Str("key", entry.Key).Err(err).Msg("serializing entry")
			return nil, errors.Errorf("serializing %s: %w: %v", entry.RelativePath, ErrPackIO, err)
		}
		files += n
		p.reporter.Update(ctx, i+1)
	}

	outPath, err := p.write(ctx, doc.String(), now)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Errorf("packing cancelled: %w", ctxErr)
		}
		logger.Error().Err(err).Msg("writing bundle")
		return nil, errors.Errorf("writing bundle: %w: %v", ErrPackIO, err)
	}

	logger.Info().Str("path", outPath).Int("files", files).Msg("bundle written")
	return &Result{
		OutputPath:     outPath,
		Files:          files,
		SkippedMissing: len(missing),
	}, nil
}

// partition splits entries into still-existing ones and the keys of
// missing ones
func partition(entries []registry.Entry) ([]registry.Entry, []string) {
	var existing []registry.Entry
	var missing []string
	for _, e := range entries {
		if _, err := os.Stat(e.Key); err != nil {
			missing = append(missing, e.Key)
			continue
		}
		existing = append(existing, e)
	}
	return existing, missing
}

// serializeEntry emits the sections for one entry and returns how many
// file sections it produced
func (p *Packer) serializeEntry(ctx context.Context, doc *strings.Builder, entry registry.Entry) (int, error) {
	switch entry.Kind {
	case registry.KindFile:
		if err := p.serializeFile(ctx, doc, entry.Key, entry.RelativePath); err != nil {
			return 0, err
		}
		return 1, nil

	case registry.KindDirectory:
		files, err := p.expandDirectory(ctx, entry.Key)
		if err != nil {
			return 0, err
		}
		for _, abs := range files {
			rel, err := filepath.Rel(p.root, abs)
			if err != nil {
				return 0, errors.Errorf("relativizing %s: %w", abs, err)
			}
			if err := p.serializeFile(ctx, doc, abs, filepath.ToSlash(rel)); err != nil {
				return 0, err
			}
		}
		return len(files), nil

	default:
		return 0, errors.Errorf("entry %s has unknown kind", entry.Key)
	}
}

func (p *Packer) serializeFile(ctx context.Context, doc *strings.Builder, abs, rel string) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("reading %s: %w", rel, err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return errors.Errorf("reading %s: %w", rel, err)
	}
	writeSection(doc, rel, string(content))
	return nil
}

// write creates the output directory if needed and writes the document
// through a temp file plus rename, so a failed pack never leaves a
// half-written bundle behind.
func (p *Packer) write(ctx context.Context, doc string, now time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(p.root, p.outDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Errorf("creating output directory: %w", err)
	}

	outPath := filepath.Join(dir, bundleName(now))
	tmp := outPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
		return "", errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Errorf("renaming temp file: %w", err)
	}
	return outPath, nil
}

type noopReporter struct{}

func (noopReporter) Start(context.Context, int)  {}
func (noopReporter) Update(context.Context, int) {}
func (noopReporter) Finish(context.Context)      {}
