package main

import (
	"errors"
	"time"
)

const (
	DEFAULT_BAUD_RATE   = 9600
	DEFAULT_LISTEN_ADDR = ":8080"

	// never a remote code, see remote.Lookup
	HEARTBEAT_BYTE byte = 0xFF
)

var LogKey = struct {
	Port   string
	Module string
	Button string
	Code   string
}{
	Port:   "port",
	Module: "module",
	Button: "button",
	Code:   "code",
}

type Config struct {
	PortName          string
	BaudRate          int
	ListenAddr        string
	LogLevel          string
	HeartbeatInterval time.Duration
	ReconnectDelay    time.Duration
	SettleDelay       time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaudRate:          DEFAULT_BAUD_RATE,
		ListenAddr:        DEFAULT_LISTEN_ADDR,
		LogLevel:          "info",
		HeartbeatInterval: 200 * time.Millisecond,
		ReconnectDelay:    500 * time.Millisecond,
		SettleDelay:       1 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.PortName == "" {
		return errors.New("no port name provided")
	}
	if c.BaudRate <= 0 {
		return errors.New("baud rate must be positive")
	}
	if c.HeartbeatInterval <= 0 || c.ReconnectDelay <= 0 {
		return errors.New("intervals must be positive")
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
