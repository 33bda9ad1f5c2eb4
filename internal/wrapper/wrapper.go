// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package wrapper

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// RetryDelaySeconds is the fixed delay between attempts inside a wrapper.
	RetryDelaySeconds = 2

	scriptExt  = ".sh"
	successExt = ".ok"
	failureExt = ".fail"

	scriptPerm = 0o755
	dirPerm    = 0o755
)

var (
	// ErrWriteScript is returned when the wrapper script cannot be written.
	ErrWriteScript = errors.New("failed to write wrapper script")
	// ErrPurge is returned when the working directory cannot be prepared.
	ErrPurge = errors.New("failed to purge working directory")
)

// Artifacts holds the paths of the generated files for one item.
type Artifacts struct {
	Item          string // the item identifier the artifacts belong to
	Script        string // path of the generated wrapper script
	SuccessMarker string // path the wrapper creates on final success
	FailureMarker string // path the wrapper creates when retries are exhausted
}

// Generator writes per-item wrapper scripts into a working directory.
// Artifact names carry a monotonic sequence number so that items which
// sanitize to the same file name cannot collide.
type Generator struct {
	fs      afero.Fs
	dir     string
	retries int
	seq     int
}

// NewGenerator creates a Generator writing into dir on fs. The retry limit is
// clamped to a minimum of one attempt.
func NewGenerator(fs afero.Fs, dir string, retries int) *Generator {
	if retries < 1 {
		retries = 1
	}

	return &Generator{
		fs:      fs,
		dir:     dir,
		retries: retries,
	}
}

// Generate writes the wrapper script for the given item and rendered command,
// returning the artifact paths. The script runs the command, retries on
// non-zero exit up to the retry limit with a fixed delay, and signals its
// final outcome by creating the success or failure marker.
func (g *Generator) Generate(item, command string) (*Artifacts, error) {
	base := fmt.Sprintf("%03d_%s", g.seq, sanitize(item))
	g.seq++

	a := &Artifacts{
		Item:          item,
		Script:        filepath.Join(g.dir, base+scriptExt),
		SuccessMarker: filepath.Join(g.dir, base+successExt),
		FailureMarker: filepath.Join(g.dir, base+failureExt),
	}

	script := renderScript(item, command, g.retries, a.SuccessMarker, a.FailureMarker)

	if err := afero.WriteFile(g.fs, a.Script, []byte(script), scriptPerm); err != nil {
		return nil, errors.Join(ErrWriteScript, err)
	}

	return a, nil
}

// Purge creates the working directory if needed and removes wrapper scripts
// and markers left behind by a previous run, so that stale markers cannot be
// misread as outcomes of the new run.
func Purge(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return errors.Join(ErrPurge, err)
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return errors.Join(ErrPurge, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch filepath.Ext(e.Name()) {
		case scriptExt, successExt, failureExt:
			if err := fs.Remove(filepath.Join(dir, e.Name())); err != nil {
				return errors.Join(ErrPurge, err)
			}
		}
	}

	return nil
}

// renderScript produces the POSIX shell wrapper. The final exit status is the
// command's last exit code; the markers, not the exit status, are what the
// orchestrator classifies on.
func renderScript(item, command string, retries int, okMarker, failMarker string) string {
	sb := strings.Builder{}
	sb.WriteString("#!/bin/sh\n")
	sb.WriteString(fmt.Sprintf("# fanrun wrapper for item %q\n", item))
	sb.WriteString("attempt=1\n")
	sb.WriteString("while :; do\n")
	sb.WriteString("    " + command + "\n")
	sb.WriteString("    rc=$?\n")
	sb.WriteString("    if [ \"$rc\" -eq 0 ]; then\n")
	sb.WriteString(fmt.Sprintf("        : > '%s'\n", okMarker))
	sb.WriteString("        exit 0\n")
	sb.WriteString("    fi\n")
	sb.WriteString(fmt.Sprintf("    if [ \"$attempt\" -ge %d ]; then\n", retries))
	sb.WriteString(fmt.Sprintf("        : > '%s'\n", failMarker))
	sb.WriteString("        exit \"$rc\"\n")
	sb.WriteString("    fi\n")
	sb.WriteString("    attempt=$((attempt+1))\n")
	sb.WriteString(fmt.Sprintf("    sleep %d\n", RetryDelaySeconds))
	sb.WriteString("done\n")

	return sb.String()
}

// sanitize maps an item identifier to a filesystem-safe name.
func sanitize(item string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, item)
}
