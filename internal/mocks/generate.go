// Package mocks provides mock implementations for testing the gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the session port interfaces. The mocks are generated using
// go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockSessionRepository(ctrl)
//	repo.EXPECT().Load(gomock.Any(), "tok").Return(rec, nil)
package mocks

// Generate mock for SessionRepository interface from internal/ports.
// This creates MockSessionRepository with methods for all SessionRepository
// interface methods: Save, Load, Clear
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_repository_mock.go github.com/velora/shop-ui-gateway/internal/ports SessionRepository

// Generate mock for LogoutNotifier interface from internal/ports.
// This creates MockLogoutNotifier with methods for all LogoutNotifier
// interface methods: NotifyLogout
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=logout_notifier_mock.go github.com/velora/shop-ui-gateway/internal/ports LogoutNotifier
