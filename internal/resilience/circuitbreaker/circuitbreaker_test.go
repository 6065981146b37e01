package circuitbreaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copydesk/internal/resilience/circuitbreaker"
)

func TestExecutePassesThroughResult(t *testing.T) {
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("test"))
	result, err := cb.Execute(func() (interface{}, error) {
		return "draft", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", result)
	assert.False(t, cb.IsOpen())
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cfg := circuitbreaker.Config{
		Name:             "failing",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
	cb := circuitbreaker.New(cfg)

	boom := errors.New("provider down")
	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, boom })
		require.Error(t, err)
	}

	assert.True(t, cb.IsOpen())
	_, err := cb.Execute(func() (interface{}, error) { return "never", nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestNamedConfigs(t *testing.T) {
	gen := circuitbreaker.GenerationAPIConfig("claude")
	assert.Equal(t, "claude-generation", gen.Name)

	pub := circuitbreaker.PublishAPIConfig()
	assert.Equal(t, "publish-api", pub.Name)
	assert.Equal(t, circuitbreaker.New(pub).Name(), pub.Name)
}
