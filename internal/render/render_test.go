// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want Token
	}{
		{
			name: "already delimited",
			in:   "{REGION}",
			want: Token("{REGION}"),
		},
		{
			name: "bare name is wrapped",
			in:   "REGION",
			want: Token("{REGION}"),
		},
		{
			name: "empty falls back to default",
			in:   "",
			want: DefaultToken,
		},
		{
			name: "only delimiters falls back to default",
			in:   "{}",
			want: DefaultToken,
		},
		{
			name: "whitespace falls back to default",
			in:   "  { } ",
			want: DefaultToken,
		},
		{
			name: "surrounding whitespace is trimmed",
			in:   " {X} ",
			want: Token("{X}"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizeToken(tc.in))
		})
	}
}

func TestTokenName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ITEM", DefaultToken.Name())
	assert.Equal(t, "REGION", Token("{REGION}").Name())
}

func TestCommand(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		template string
		token    Token
		item     string
		want     string
	}{
		{
			name:     "single occurrence",
			template: "deploy --region {ITEM}",
			token:    DefaultToken,
			item:     "eu",
			want:     "deploy --region eu",
		},
		{
			name:     "multiple occurrences are all replaced",
			template: "cp {ITEM}.src {ITEM}.dst # {ITEM}",
			token:    DefaultToken,
			item:     "a",
			want:     "cp a.src a.dst # a",
		},
		{
			name:     "no occurrence returns template unchanged",
			template: "echo hello",
			token:    DefaultToken,
			item:     "eu",
			want:     "echo hello",
		},
		{
			name:     "token with regex metacharacters is matched literally",
			template: "run {X.*} now",
			token:    Token("{X.*}"),
			item:     "a",
			want:     "run a now",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Command(tc.template, tc.token, tc.item))
		})
	}
}
