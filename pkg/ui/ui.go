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

// Package ui is the user-facing console surface, kept separate from the
// zerolog diagnostic stream.
package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// 🖥️ Printer writes user-facing messages with pterm prefix printers
type Printer struct {
	info    pterm.PrefixPrinter
	success pterm.PrefixPrinter
	warning pterm.PrefixPrinter
	err     pterm.PrefixPrinter
}

// 🏭 NewPrinter creates a printer with the default pterm styles
func NewPrinter() *Printer {
	return &Printer{
		info:    pterm.Info,
		success: pterm.Success,
		warning: pterm.Warning,
		err:     pterm.Error,
	}
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	p.info.Println(fmt.Sprintf(format, args...))
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	p.success.Println(fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	p.warning.Println(fmt.Sprintf(format, args...))
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	p.err.Println(fmt.Sprintf(format, args...))
}

// 🌀 SpinnerReporter shows pack progress as a pterm spinner. It satisfies
// the packer's Reporter interface.
type SpinnerReporter struct {
	spinner *pterm.SpinnerPrinter
	total   int
}

// NewSpinnerReporter creates an idle spinner reporter
func NewSpinnerReporter() *SpinnerReporter {
	return &SpinnerReporter{}
}

// Start begins the spinner for an operation over total entries. The
// spinner writes to stderr so stdout stays clean for protocol and list
// output.
func (s *SpinnerReporter) Start(_ context.Context, total int) {
	s.total = total
	spinner, err := pterm.DefaultSpinner.WithWriter(os.Stderr).Start(fmt.Sprintf("Packing %d entries...", total))
	if err != nil {
		return
	}
	s.spinner = spinner
}

// Update advances the spinner text
func (s *SpinnerReporter) Update(_ context.Context, done int) {
	if s.spinner == nil {
		return
	}
	s.spinner.UpdateText(fmt.Sprintf("Packing entry %d/%d...", done, s.total))
}

// Finish stops the spinner
func (s *SpinnerReporter) Finish(_ context.Context) {
	if s.spinner == nil {
		return
	}
	_ = s.spinner.Stop()
	s.spinner = nil
}
