// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter/v2"
)

// ErrFetch is returned when the manifest cannot be retrieved.
var ErrFetch = errors.New("failed to fetch manifest")

// Fetch retrieves a manifest from src and parses it. src may be a local path
// or any URL supported by Hashicorp's go-getter syntax (https, git, s3, ...).
func Fetch(ctx context.Context, src string) (*Manifest, error) {
	if src == "" {
		return nil, ErrFetch
	}

	// Local files are the common case; read them directly.
	if _, err := os.Stat(src); err == nil {
		b, err := os.ReadFile(src)
		if err != nil {
			return nil, errors.Join(ErrFetch, err)
		}

		return Parse(b)
	}

	tmpDir, err := os.MkdirTemp("", "fanrun-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	dst := filepath.Join(tmpDir, "manifest.yaml")

	req := &getter.Request{
		Src:     src,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	if _, err := client.Get(ctx, req); err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	b, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return Parse(b)
}
