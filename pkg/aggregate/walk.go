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

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🚶 expandDirectory lists every file under dir depth-first, in ReadDir
// order. Directories are recursed into, not emitted. Returned paths are
// absolute. Ignore patterns are doublestar globs matched against the
// root-relative slash path; a matching directory is skipped whole.
func (p *Packer) expandDirectory(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("expanding %s: %w", dir, err)
	}

	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, de := range listing {
		abs := filepath.Join(dir, de.Name())
		if p.ignored(abs) {
			continue
		}
		if de.IsDir() {
			sub, err := p.expandDirectory(ctx, abs)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		if de.Type().IsRegular() {
			files = append(files, abs)
		}
	}
	return files, nil
}

// 🙈 ignored reports whether the root-relative path of abs matches any
// configured ignore pattern. Unrelatable or invalid patterns never ignore.
func (p *Packer) ignored(abs string) bool {
	rel, err := filepath.Rel(p.root, abs)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range p.ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
