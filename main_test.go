package main

import (
	"context"
	"testing"

	"donor-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func memoryConfig() *utils.Config {
	return &utils.Config{
		App:       utils.AppConfig{Name: "donor-booking", Port: "0", StorageDriver: utils.StorageDriverMemory, CORSOrigin: "*"},
		JWT:       utils.JWTConfig{Secret: "main-test", ExpiryHours: 1},
		Schedule:  utils.ScheduleConfig{Open: "09:00", Close: "18:00", SlotMinutes: 30},
		RateLimit: utils.RateLimitConfig{RPS: 5, Burst: 10, WindowSeconds: 60},
	}
}

func TestRunReturnsWiringError(t *testing.T) {
	cfg := memoryConfig()
	cfg.Schedule.Close = "08:00"

	err := run(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wire application")
}

func TestRunStopsWithContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, memoryConfig(), zap.New(core))
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Shutting down HTTP server").Len())
}
