package mdns

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Format: "json", Writer: &bytes.Buffer{}})
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "_plateful._tcp", ServiceType)
	assert.Equal(t, "v1", APIVersion)
	assert.NotEmpty(t, ServerVersion)
}

func TestNewService(t *testing.T) {
	service := NewService(testLogger())
	require.NotNil(t, service)
	assert.Nil(t, service.server, "server should be nil before Start")
}

func TestServiceStop_BeforeStartIsSafe(t *testing.T) {
	service := NewService(testLogger())

	service.Stop()
	service.Stop()
	assert.Nil(t, service.server)
}
