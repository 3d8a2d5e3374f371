package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	info := models.NewAppBuildInfo("1.0.0", "2026-04-07", "abc1234")

	svc, err := NewAppInfoService(info, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	info := models.NewAppBuildInfo("", "2026-04-07", "abc1234")

	svc, err := NewAppInfoService(info, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestNewAppInfoService_ReturnsAppInfoServiceInterface(t *testing.T) {
	info := models.NewAppBuildInfo("2.5.1", "", "")

	svc, err := NewAppInfoService(info, logger.Nop())

	require.NoError(t, err)
	// compile-time check: returned value must satisfy the interface
	var _ AppInfoService = svc
}

// ─────────────────────────────────────────────
// GetBuildInfo
// ─────────────────────────────────────────────

func TestGetBuildInfo_ReturnsConfiguredBuild(t *testing.T) {
	info := models.NewAppBuildInfo("3.1.4", "2026-04-07T10:00:00Z", "deadbee")
	svc, err := NewAppInfoService(info, logger.Nop())
	require.NoError(t, err)

	got := svc.GetBuildInfo(context.Background())

	assert.Equal(t, "3.1.4", got.BuildVersion())
	assert.Equal(t, "2026-04-07T10:00:00Z", got.BuildDate())
	assert.Equal(t, "deadbee", got.BuildCommit())
}

func TestGetBuildInfo_BuildIsStable(t *testing.T) {
	info := models.NewAppBuildInfo("0.0.1", "2026-04-07", "abc1234")
	svc, err := NewAppInfoService(info, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	first := svc.GetBuildInfo(ctx)
	second := svc.GetBuildInfo(ctx)

	assert.Equal(t, first, second, "build info must not change between calls")
}

func TestGetBuildInfo_DifferentInstances_IndependentBuilds(t *testing.T) {
	svc1, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	svc2, err := NewAppInfoService(models.NewAppBuildInfo("2.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", svc1.GetBuildInfo(context.Background()).BuildVersion())
	assert.Equal(t, "2.0.0", svc2.GetBuildInfo(context.Background()).BuildVersion())
}

func TestGetBuildInfo_VersionWithSpecialChars(t *testing.T) {
	version := "v1.2.3-beta+build.42"
	svc, err := NewAppInfoService(models.NewAppBuildInfo(version, "", ""), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, version, svc.GetBuildInfo(context.Background()).BuildVersion())
}

func TestGetBuildInfo_CancelledContext_StillReturnsBuild(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	// GetBuildInfo does not use ctx, so it must still return the build metadata
	assert.Equal(t, "1.0.0", svc.GetBuildInfo(ctx).BuildVersion())
}
