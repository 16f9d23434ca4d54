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

// 📂 Kind identifies what an entry points at
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDirectory
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// 📄 Entry is one user-selected file or directory reference
type Entry struct {
	// Key is the canonical absolute path, used as identity and removal handle
	Key string `json:"key"`

	// RelativePath is the display path relative to the project root,
	// always slash-separated
	RelativePath string `json:"relative_path"`

	// Kind records whether the entry was a file or a directory when added
	Kind Kind `json:"kind"`
}
