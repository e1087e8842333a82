package main

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/richiesure/day3-docker-ecs-deployment/internal/config"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/hostinfo"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestLogStartup_ThreeLines(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.FromZap(zap.New(core))

	logStartup(log, 3000, "a1b2c3d4e5f6", "1.0.0")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Server running on port 3000", entries[0].Message)
	assert.Equal(t, "Container ID: a1b2c3d4e5f6", entries[1].Message)
	assert.Equal(t, "Version: 1.0.0", entries[2].Message)
	assert.EqualValues(t, 3000, entries[0].ContextMap()["port"])
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "absent.env"))
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "config.yml"))
	t.Setenv("PORT", "")
	t.Setenv("APP_VERSION", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENABLE_DIAGNOSTICS", "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Service.Port)
	assert.Equal(t, "1.0.0", cfg.Service.Version)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "absent.env"))
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "config.yml"))
	t.Setenv("PORT", "70000")

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.port")
}

func TestRunServer_ServesAndStops(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "absent.env"))
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "config.yml"))
	t.Setenv("PORT", strconv.Itoa(freePort(t)))
	t.Setenv("APP_VERSION", "3.1.4")
	t.Setenv("ENABLE_DIAGNOSTICS", "true")
	t.Setenv("DIAGNOSTICS_HOST", "127.0.0.1")
	t.Setenv("DIAGNOSTICS_PORT", strconv.Itoa(freePort(t)))

	cfg, err := loadConfig()
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.FromZap(zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exit := make(chan int, 1)
	go func() { exit <- runServer(ctx, cfg, log, hostinfo.New()) }()

	base := "http://127.0.0.1:" + strconv.Itoa(cfg.Service.Port)
	require.Eventually(t, func() bool {
		resp, getErr := http.Get(base + "/health")
		if getErr != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)

	var status map[string]any
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "healthy", status["status"])

	diag := "http://127.0.0.1:" + strconv.Itoa(cfg.Diagnostics.Port)
	resp, err = http.Get(diag + "/metrics")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `day3_http_requests_total{route="health"}`)

	cancel()

	select {
	case code := <-exit:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after cancellation")
	}

	// Only the three startup lines are logged at info level.
	messages := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{
		"Server running on port " + strconv.Itoa(cfg.Service.Port),
		"Container ID: " + hostinfo.New().Hostname(),
		"Version: 3.1.4",
	}, messages)
}

func TestRunServer_PortInUse(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer func() { _ = taken.Close() }()

	cfg := &config.Config{}
	cfg.Service.Name = "day3-docker-ecs"
	cfg.Service.Version = "1.0.0"
	cfg.Service.Port = taken.Addr().(*net.TCPAddr).Port

	code := runServer(context.Background(), cfg, logger.NewNop(), hostinfo.New())
	assert.Equal(t, 1, code)
}
