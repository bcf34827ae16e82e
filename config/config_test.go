package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("VMBOT_TEST_SET", "value")
	t.Setenv("VMBOT_TEST_EMPTY", "")

	assert.Equal(t, "value", GetEnv("VMBOT_TEST_SET", "fallback"))
	assert.Equal(t, "", GetEnv("VMBOT_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("VMBOT_TEST_UNSET_KEY", "fallback"))
}

func TestGetEnvTrimmed(t *testing.T) {
	t.Setenv("VMBOT_TEST_PADDED", "  42 \n")
	assert.Equal(t, "42", GetEnvTrimmed("VMBOT_TEST_PADDED"))
	assert.Equal(t, "", GetEnvTrimmed("VMBOT_TEST_UNSET_KEY"))
}
