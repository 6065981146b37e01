package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"copydesk/pkg/config"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", config.GetEnvString("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", config.GetEnvString("TEST_STR_UNSET", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, config.GetEnvInt("TEST_INT", 7))

	t.Setenv("TEST_INT_BAD", "not-a-number")
	assert.Equal(t, 7, config.GetEnvInt("TEST_INT_BAD", 7))

	assert.Equal(t, 7, config.GetEnvInt("TEST_INT_UNSET", 7))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.8")
	assert.InDelta(t, 0.8, config.GetEnvFloat("TEST_FLOAT", 0.2), 1e-9)

	t.Setenv("TEST_FLOAT_BAD", "warm")
	assert.InDelta(t, 0.2, config.GetEnvFloat("TEST_FLOAT_BAD", 0.2), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, config.GetEnvBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL_BAD", "yep")
	assert.False(t, config.GetEnvBool("TEST_BOOL_BAD", false))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, config.GetEnvDuration("TEST_DUR", time.Minute))

	t.Setenv("TEST_DUR_BAD", "ninety")
	assert.Equal(t, time.Minute, config.GetEnvDuration("TEST_DUR_BAD", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_LIST", "a, b , ,c")
	assert.Equal(t, []string{"a", "b", "c"}, config.GetEnvStringList("TEST_LIST", nil))

	fallback := []string{"x"}
	assert.Equal(t, fallback, config.GetEnvStringList("TEST_LIST_UNSET", fallback))
}
