package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{ServiceName: "test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{
		Endpoint:    "localhost:4318",
		URLPath:     "/v1/traces",
		Insecure:    true,
		ServiceName: "test",
		Version:     "dev",
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	// sin spans pendientes el apagado no contacta al colector
	assert.NoError(t, shutdown(context.Background()))
}
