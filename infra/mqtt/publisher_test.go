package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "dispatchd", cfg.ClientID)
	assert.Equal(t, "dispatch/batch/results", cfg.Topic)
	assert.Equal(t, 5000, cfg.TimeoutMS)
}

func TestConfigSetDefaultsKeepsValues(t *testing.T) {
	cfg := Config{ClientID: "engine-1", Topic: "ops/results", TimeoutMS: 250}
	cfg.SetDefaults()
	assert.Equal(t, "engine-1", cfg.ClientID)
	assert.Equal(t, "ops/results", cfg.Topic)
	assert.Equal(t, 250, cfg.TimeoutMS)
}
