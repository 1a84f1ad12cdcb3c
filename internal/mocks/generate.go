// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces. To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	flow := mocks.NewMockOAuthFlow(ctrl)
//	flow.EXPECT().Refresh(gomock.Any(), "rt").Return(grant, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ports_mock.go github.com/blitzforge/linked-roles/internal/ports OAuthFlow,RoleConnectionClient,TokenStore,MembershipStore
