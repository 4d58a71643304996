// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"bytes"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/golang/widenreq/internal/catalog"
	"github.com/golang/widenreq/internal/manifest"
)

// Exec is the concrete Validator that shells out to an external build
// tool, per spec §6 ("Build tool interface"): pin -> "add name@=version",
// build -> "build [--package P]* [--features a,b,...] [--release]", test
// -> "test" with the same options plus "--" and "[--test name]*" filters,
// cleanup -> "clean".
type Exec struct {
	// Command is the build tool binary, e.g. "cargo".
	Command string
	// Dir is the working tree the build tool operates in.
	Dir string
	// Log receives debug lines for each subprocess invocation: the command
	// line, then its outcome.
	Log *logrus.Entry

	pins map[string]catalog.Version
}

// NewExec returns an Exec validator for the given build tool binary and
// working directory.
func NewExec(command, dir string, log *logrus.Entry) *Exec {
	return &Exec{
		Command: command,
		Dir:     dir,
		Log:     log,
		pins:    make(map[string]catalog.Version),
	}
}

func (e *Exec) Pin(name string, version catalog.Version) {
	e.pins[name] = version
}

func (e *Exec) PinAll(seeds map[string]catalog.Version) {
	for name, v := range seeds {
		e.Pin(name, v)
	}
}

func (e *Exec) applyPins() error {
	for name, v := range e.pins {
		args := []string{"add", name + "@=" + v.String()}
		if err := e.run(args); err != nil {
			if _, ok := err.(*Failure); ok {
				return errors.Wrapf(err, "pinning %s@=%s", name, v)
			}
			return err
		}
	}
	return nil
}

func (e *Exec) Check(mode Mode, opts Options) error {
	if err := e.applyPins(); err != nil {
		return err
	}

	var args []string
	switch mode {
	case ModeBuild:
		args = append(args, "build")
		args = append(args, buildArgs(opts)...)
	case ModeTest:
		args = append(args, "test")
		args = append(args, buildArgs(opts)...)
		if len(opts.Tests) > 0 {
			args = append(args, "--")
			for _, t := range opts.Tests {
				args = append(args, "--test", t)
			}
		}
	default:
		return errors.Errorf("unknown check mode %d", mode)
	}

	return e.run(args)
}

func buildArgs(opts Options) []string {
	var args []string
	for _, p := range opts.Packages {
		args = append(args, "--package", p)
	}
	if len(opts.Features) > 0 {
		args = append(args, "--features", joinComma(opts.Features))
	}
	if opts.Release {
		args = append(args, "--release")
	}
	return args
}

func joinComma(ss []string) string {
	var buf bytes.Buffer
	for i, s := range ss {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s)
	}
	return buf.String()
}

// run executes the build tool, translating its exit status into the
// Failure/hard-error split the resolver core depends on.
func (e *Exec) run(args []string) error {
	cmd := exec.Command(e.Command, args...)
	cmd.Dir = e.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if e.Log != nil {
		e.Log.Debugf("running %s %v", e.Command, args)
	}

	err := cmd.Run()
	if err == nil {
		if e.Log != nil {
			e.Log.Debugf("%s %v: OK", e.Command, args)
		}
		return nil
	}

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		// The process could not even be launched: a hard infrastructure
		// error, not a validation failure.
		return errors.Wrapf(err, "running %s %v", e.Command, args)
	}

	if e.Log != nil {
		e.Log.Debugf("%s %v: FAILED (exit %d)", e.Command, args, exitErr.ExitCode())
	}

	return &Failure{
		ExitCode:    exitErr.ExitCode(),
		Diagnostics: stderr.String(),
	}
}

// WriteRequirement persists the resolved requirement directly into the
// manifest file, rather than through the build tool: spec §6 defines
// build-tool subprocess arguments only for pin/build/test/cleanup, so
// writeback is a manifest-layer operation (internal/manifest), not
// another "add" invocation.
func (e *Exec) WriteRequirement(name string, req catalog.Requirement) error {
	path := filepath.Join(e.Dir, manifest.FileName)
	if err := manifest.WriteRequirement(path, name, req); err != nil {
		return errors.Wrapf(err, "writing requirement for %s", name)
	}
	return nil
}

func (e *Exec) Cleanup() {
	_ = e.run([]string{"clean"})
}
