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

package opts

import (
	"context"

	"github.com/walteh/mdpack/pkg/aggregate"
	"github.com/walteh/mdpack/pkg/config"
	"github.com/walteh/mdpack/pkg/registry"
	"github.com/walteh/mdpack/pkg/ui"
)

// 🎯 RootOpts contains the shared dependencies every command needs
type RootOpts struct {
	Config   *config.Config
	Registry *registry.Registry
	Session  *registry.Session
	Packer   *aggregate.Packer
	Printer  *ui.Printer
}

// 🏗️ LoadFunc builds RootOpts after flags have been parsed
type LoadFunc func(ctx context.Context) (*RootOpts, error)
