// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ui wires up the resolver's leveled logging, replacing the
// teacher's bare io.Writer logger with logrus (as the rest of the
// dependency pack does — see e.g. alm/operator.go's "log" alias) so
// the CLI's three verbosity knobs (--verbose, --quiet, --silent) map
// onto logrus levels instead of an ad-hoc boolean.
package ui

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a *logrus.Logger honoring the CLI's mutually-exclusive
// verbosity flags. Entries at or above error level go to stderr;
// everything else goes to stdout (spec §6, "Writes status to standard
// output below error level, errors to standard error").
func New(verbose, quiet, silent bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetOutput(io.Discard)
	l.AddHook(&splitHook{stdout: os.Stdout, stderr: os.Stderr, formatter: l.Formatter})

	switch {
	case silent:
		l.SetLevel(logrus.FatalLevel) // prints essentially nothing
	case quiet:
		l.SetLevel(logrus.ErrorLevel)
	case verbose:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// splitHook sends warning-and-below entries to stdout, error-and-above to
// stderr, since logrus's own Logger.Out is a single stream.
type splitHook struct {
	stdout, stderr io.Writer
	formatter      logrus.Formatter
}

func (h *splitHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *splitHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	if e.Level <= logrus.ErrorLevel {
		_, err = h.stderr.Write(b)
	} else {
		_, err = h.stdout.Write(b)
	}
	return err
}
