//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools used via go:generate:
// - github.com/matryer/moq (service mocks)
// - github.com/pressly/goose/v3/cmd/goose (migrations)
