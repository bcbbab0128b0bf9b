package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoNativeEnv(t *testing.T) {
	t.Setenv("ACCEL_NO_NATIVE", "")
	assert.False(t, NoNativeEnv())

	t.Setenv("ACCEL_NO_NATIVE", "1")
	assert.True(t, NoNativeEnv())

	t.Setenv("ACCEL_NO_NATIVE", "false")
	assert.False(t, NoNativeEnv())

	t.Setenv("ACCEL_NO_NATIVE", "yes")
	assert.True(t, NoNativeEnv())
}

func TestDefaultBackendHonorsOverride(t *testing.T) {
	t.Setenv("ACCEL_NO_NATIVE", "1")
	assert.Equal(t, "fallback", DefaultBackend().Name())
}

func TestCapabilityReport(t *testing.T) {
	assert.NotEmpty(t, CurrentName())
	assert.Equal(t, CurrentLevel().String(), CurrentName())
}
