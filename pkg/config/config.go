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

// Package config holds mdpack's configuration: where bundles go, what the
// document is titled, and which paths directory expansion ignores.
package config

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	DefaultOutputDir   = "search"
	DefaultTitle       = "Code Bundle"
	DefaultSessionFile = ".mdpack/session.json"
)

// 🔧 Config is the mdpack configuration
type Config struct {
	// Root overrides the project root; empty means the current directory
	Root string `hcl:"root,optional" yaml:"root" json:"root"`

	// OutputDir is the root-relative directory bundles are written to
	OutputDir string `hcl:"output_dir,optional" yaml:"output_dir" json:"output_dir"`

	// Title is the bundle document's title line
	Title string `hcl:"title,optional" yaml:"title" json:"title"`

	// IgnorePatterns are doublestar globs skipped during directory
	// expansion, matched against root-relative slash paths
	IgnorePatterns []string `hcl:"ignore_patterns,optional" yaml:"ignore_patterns" json:"ignore_patterns"`

	// SessionFile is the root-relative location of the saved entry list
	SessionFile string `hcl:"session_file,optional" yaml:"session_file" json:"session_file"`
}

// 🏭 Default returns a config with every field at its default
func Default() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		Title:       DefaultTitle,
		SessionFile: DefaultSessionFile,
		IgnorePatterns: []string{
			"**/.git",
			"**/.mdpack",
			"**/node_modules",
		},
	}
}

// applyDefaults fills unset fields after parsing
func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.SessionFile == "" {
		c.SessionFile = DefaultSessionFile
	}
	if c.IgnorePatterns == nil {
		c.IgnorePatterns = Default().IgnorePatterns
	}
}

// ✅ Validate checks the config for values that cannot work
func (c *Config) Validate() error {
	if filepath.IsAbs(c.OutputDir) {
		return errors.Errorf("output_dir %q must be relative to the root", c.OutputDir)
	}
	if strings.HasPrefix(filepath.ToSlash(filepath.Clean(c.OutputDir)), "..") {
		return errors.Errorf("output_dir %q escapes the root", c.OutputDir)
	}
	if filepath.IsAbs(c.SessionFile) {
		return errors.Errorf("session_file %q must be relative to the root", c.SessionFile)
	}
	return nil
}
