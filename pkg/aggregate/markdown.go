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
	"fmt"
	"path"
	"strings"
	"time"
)

// 🏷️ languageTag derives a fence tag from a file name: the lowercased
// extension without the leading dot, or "txt" when there is none.
func languageTag(name string) string {
	ext := path.Ext(name)
	if ext == "" || ext == "." {
		return "txt"
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// 📝 writeHeader emits the document title, generation timestamp and
// separator rule.
func writeHeader(b *strings.Builder, title string, now time.Time) {
	fmt.Fprintf(b, "# %s\n\n", title)
	fmt.Fprintf(b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05 MST"))
	b.WriteString("---\n\n")
}

// 📝 writeSection emits one file section: heading with the relative path,
// fenced block tagged with the language, raw content, separator rule.
func writeSection(b *strings.Builder, relPath, content string) {
	fmt.Fprintf(b, "## File: `%s`\n\n", relPath)
	fmt.Fprintf(b, "```%s\n", languageTag(relPath))
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("```\n\n---\n\n")
}

// 🕐 bundleName builds the output file name for a given instant:
// bundle-YYYYMMDD-HHmmss.md in local time.
func bundleName(now time.Time) string {
	return "bundle-" + now.Format("20060102-150405") + ".md"
}
