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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLanguageTag(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "python", path: "a.py", expected: "py"},
		{name: "nested", path: "sub/dir/main.go", expected: "go"},
		{name: "uppercase_extension", path: "README.MD", expected: "md"},
		{name: "no_extension", path: "Makefile", expected: "txt"},
		{name: "trailing_dot", path: "weird.", expected: "txt"},
		{name: "dotfile_with_extension", path: ".env.local", expected: "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, languageTag(tt.path))
		})
	}
}

func TestWriteSection(t *testing.T) {
	var b strings.Builder
	writeSection(&b, "src/a.py", "print(1)\n")

	expected := "## File: `src/a.py`\n\n```py\nprint(1)\n```\n\n---\n\n"
	assert.Equal(t, expected, b.String())
}

func TestWriteSectionAddsTrailingNewline(t *testing.T) {
	var b strings.Builder
	writeSection(&b, "a.txt", "no newline")

	assert.Contains(t, b.String(), "```txt\nno newline\n```\n")
}

func TestWriteHeader(t *testing.T) {
	var b strings.Builder
	now := time.Date(2025, 3, 9, 14, 5, 2, 0, time.UTC)
	writeHeader(&b, "Code Bundle", now)

	out := b.String()
	assert.True(t, strings.HasPrefix(out, "# Code Bundle\n\n"))
	assert.Contains(t, out, "Generated: 2025-03-09 14:05:02 UTC\n")
	assert.Contains(t, out, "---\n")
}

func TestBundleName(t *testing.T) {
	now := time.Date(2025, 3, 9, 14, 5, 2, 0, time.UTC)
	assert.Equal(t, "bundle-20250309-140502.md", bundleName(now))
}
