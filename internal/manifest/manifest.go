// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifest loads the optional YAML run manifest, which can supply the
// command template, placeholder, retry limit, parallelism and item list.
// Values given on the command line take precedence over manifest values.
package manifest

import (
	"errors"

	"github.com/goccy/go-yaml"
)

// ErrParse is returned when the manifest YAML cannot be decoded.
var ErrParse = errors.New("failed to parse manifest")

// Manifest is the YAML run definition.
type Manifest struct {
	Template    string   `yaml:"template"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	Retries     int      `yaml:"retries,omitempty"`
	Parallelism int      `yaml:"parallelism,omitempty"`
	WorkDir     string   `yaml:"workdir,omitempty"`
	Items       []string `yaml:"items,omitempty"`
}

// Parse decodes a manifest from YAML bytes.
func Parse(b []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	return m, nil
}

// Merge returns a copy of m with every non-zero field of over taking
// precedence. It is used to overlay command-line values onto a manifest.
func (m *Manifest) Merge(over *Manifest) *Manifest {
	out := *m

	if over == nil {
		return &out
	}

	if over.Template != "" {
		out.Template = over.Template
	}

	if over.Placeholder != "" {
		out.Placeholder = over.Placeholder
	}

	if over.Retries > 0 {
		out.Retries = over.Retries
	}

	if over.Parallelism > 0 {
		out.Parallelism = over.Parallelism
	}

	if over.WorkDir != "" {
		out.WorkDir = over.WorkDir
	}

	if len(over.Items) > 0 {
		out.Items = over.Items
	}

	return &out
}
