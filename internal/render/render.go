// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render substitutes a placeholder token in a command template with a
// concrete item identifier. The token is matched literally; a template that
// does not contain the token is returned unchanged, which allows items to act
// purely as loop drivers for template-less repetition.
package render

import "strings"

const (
	// DefaultName is the placeholder name used when the caller-supplied token
	// is empty after trimming delimiters.
	DefaultName = "ITEM"
	// DefaultToken is the delimited form of DefaultName.
	DefaultToken = Token("{" + DefaultName + "}")

	openDelim  = "{"
	closeDelim = "}"
)

// Token is a delimited placeholder token, e.g. "{ITEM}".
type Token string

// NormalizeToken converts a caller-supplied placeholder into its canonical
// delimited form. Delimiters are added if the caller omitted them. If the
// token is empty after trimming whitespace and delimiters, DefaultToken is
// returned.
func NormalizeToken(s string) Token {
	name := strings.TrimSpace(s)
	name = strings.TrimPrefix(name, openDelim)
	name = strings.TrimSuffix(name, closeDelim)
	name = strings.TrimSpace(name)

	if name == "" {
		return DefaultToken
	}

	return Token(openDelim + name + closeDelim)
}

// Name returns the token name without its delimiters.
func (t Token) Name() string {
	name := strings.TrimPrefix(string(t), openDelim)

	return strings.TrimSuffix(name, closeDelim)
}

// String implements the Stringer interface for Token.
func (t Token) String() string {
	return string(t)
}

// Command replaces every literal occurrence of the token in the template with
// the item identifier.
func Command(template string, token Token, item string) string {
	return strings.ReplaceAll(template, string(token), item)
}
