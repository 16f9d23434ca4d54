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

package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/mdpack/pkg/registry"
)

// 🎨 Display configuration
const (
	rowIndent = 2  // spaces to indent entry rows
	pathWidth = 45 // base width for the relative path
	kindWidth = 10 // width for the entry kind
)

// 🎯 FormatEntryRow formats one registry entry for the list view
func FormatEntryRow(index int, entry registry.Entry) string {
	var marker string
	switch entry.Kind {
	case registry.KindDirectory:
		marker = color.CyanString("▸")
	default:
		marker = color.GreenString("·")
	}

	pathPart := fmt.Sprintf("%-*s", pathWidth, entry.RelativePath)
	kindPart := fmt.Sprintf("%-*s", kindWidth, entry.Kind.String())

	return fmt.Sprintf("%s%2d %s %s %s",
		strings.Repeat(" ", rowIndent),
		index+1,
		marker,
		pathPart,
		color.HiBlackString(kindPart),
	)
}
