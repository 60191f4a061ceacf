package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetStringDefaults(t *testing.T) {
	c := map[string]string{"PORT": "9000"}

	assert.Equal(t, "9000", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(c, "MISSING", "8080"))
	assert.Equal(t, "8080", GetString(nil, "PORT", "8080"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"LIMIT": "12", "BROKEN": "twelve"}

	assert.Equal(t, 12, GetInt(c, "LIMIT", 6))
	assert.Equal(t, 6, GetInt(c, "BROKEN", 6))
	assert.Equal(t, 6, GetInt(c, "MISSING", 6))
}

func TestGetSeconds(t *testing.T) {
	c := map[string]string{"TIMEOUT": "30", "BROKEN": "soon"}

	assert.Equal(t, 30*time.Second, GetSeconds(c, "TIMEOUT", time.Minute))
	assert.Equal(t, time.Minute, GetSeconds(c, "BROKEN", time.Minute))
	assert.Equal(t, time.Minute, GetSeconds(nil, "TIMEOUT", time.Minute))
}

func TestSplit(t *testing.T) {
	key, value := split("KEY=a=b")
	assert.Equal(t, "KEY", key)
	assert.Equal(t, "a=b", value)

	key, value = split("BARE")
	assert.Equal(t, "BARE", key)
	assert.Empty(t, value)
}
