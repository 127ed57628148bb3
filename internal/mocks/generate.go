// Package mocks provides gomock implementations of the dashboard ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockBackendAPI(ctrl)
//	api.EXPECT().Get(gomock.Any(), gomock.Any(), "/dashboard", gomock.Nil(), gomock.Any()).Return(nil)
package mocks

// MockBackendAPI covers Do, Get, Post, Put, Delete and Upload against the business API.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=backend_api_mock.go github.com/techmidia/painel/internal/ports BackendAPI

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=transcript_store_mock.go github.com/techmidia/painel/internal/ports TranscriptStore
