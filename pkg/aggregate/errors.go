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

import "gitlab.com/tozd/go/errors"

var (
	// ErrEmptyList means pack was requested with no entries at all
	ErrEmptyList = errors.New("entry list is empty")

	// ErrNoRoot means no project root is available to resolve against
	ErrNoRoot = errors.New("no project root available")

	// ErrNothingToPack means every entry turned out to be missing at
	// validation time
	ErrNothingToPack = errors.New("no existing entries to pack")

	// ErrPackIO wraps any read or write failure during serialization.
	// Callers show a short generic message and log the wrapped detail.
	ErrPackIO = errors.New("pack i/o failure")
)
