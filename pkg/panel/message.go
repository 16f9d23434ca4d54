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

// Inbound operations
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpClear  = "clear"
	OpPack   = "pack"
)

// Outbound operations
const (
	OpEntries = "entries"
	OpStatus  = "status"
)

// 📨 Inbound is a message from the host surface to the panel
type Inbound struct {
	Op   string   `json:"op"`
	URIs []string `json:"uris,omitempty"`
	Key  string   `json:"key,omitempty"`
}

// 👁️ EntryView is the host-facing shape of one entry
type EntryView struct {
	Key          string `json:"key"`
	RelativePath string `json:"relativePath"`
	Type         string `json:"type"`
}

// 📤 EntriesMessage is a full snapshot push, with optional transient status
type EntriesMessage struct {
	Op      string      `json:"op"`
	Entries []EntryView `json:"entries"`
	Status  string      `json:"status,omitempty"`
}

// 📤 StatusMessage is a status-only push
type StatusMessage struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}
