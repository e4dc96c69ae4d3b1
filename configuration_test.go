package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate())

	cfg.PortName = "/dev/ttyUSB0"
	assert.NoError(t, cfg.Validate())

	cfg.BaudRate = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.PortName = "/dev/ttyUSB0"
	cfg.HeartbeatInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	assert.NoError(t, cmd.Flags().Parse([]string{"--baud", "115200", "--listen", ":9090"}))
	baud, err := cmd.Flags().GetInt("baud")
	assert.NoError(t, err)
	assert.Equal(t, 115200, baud)
	listen, err := cmd.Flags().GetString("listen")
	assert.NoError(t, err)
	assert.Equal(t, ":9090", listen)
}
