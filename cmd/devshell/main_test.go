package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/embedder-rs/devshell/internal/adapters/telemetry"
	"github.com/embedder-rs/devshell/internal/app"
	"github.com/embedder-rs/devshell/internal/core/ports"
	"github.com/embedder-rs/devshell/internal/core/ports/mocks"
	"github.com/embedder-rs/devshell/internal/engine/provisioner"
)

func testComponents(ctrl *gomock.Controller) (*app.Components, *mocks.MockConfigLoader, *mocks.MockLogger) {
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	prov := provisioner.New(
		mocks.NewMockSourceFetcher(ctrl),
		mocks.NewMockToolchainResolver(ctrl),
		mocks.NewMockEngineProvider(ctrl),
		mocks.NewMockShellFactory(ctrl),
		mocks.NewMockHeaderVendorer(ctrl),
		mocks.NewMockLockStore(ctrl),
		telemetry.NewNoOp(),
		mockLogger,
	)
	application := app.New(mockLoader, prov, func(_ string) ports.Formatter {
		return mocks.NewMockFormatter(ctrl)
	})

	return &app.Components{
		App:       application,
		Logger:    mockLogger,
		Telemetry: telemetry.NewNoOp(),
	}, mockLoader, mockLogger
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	components, _, _ := testComponents(ctrl)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	components, mockLoader, mockLogger := testComponents(ctrl)
	mockLoader.EXPECT().Load(".").Return(nil, errors.New("load failed"))
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"lock"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
}
