//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// Air is installed globally via `go install`; mockgen runs through
// `go run` from go.mod so generated mocks match the gomock version in use.
package tools

// Development tools:
//
// Air - Live reload while editing templates and handlers (DEV=true)
//   Install: go install github.com/air-verse/air@v1.63.0
//   Version: v1.63.0 (pinned 2025-01-01)
//   Docs: https://github.com/air-verse/air
//
// mockgen - Regenerates internal/mocks
//   Run: go generate ./internal/mocks
//   Docs: https://github.com/uber-go/mock
