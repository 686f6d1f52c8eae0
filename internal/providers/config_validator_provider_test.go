package providers

import (
	"skinwatch/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Api: structures.ApiConfig{
			BaseUrl: "https://api.example.com",
			Timeout: 10 * time.Second,
		},
		Store: structures.StoreConfig{
			FilePath: "/tmp/skinwatch.dat",
		},
		Monitor: structures.MonitorConfig{
			TaskName: "high-risk-check",
			Interval: 15 * time.Minute,
		},
		Channels: structures.ChannelsConfig{
			Local: structures.LocalChannelConfig{Enabled: true, Output: "-"},
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyBaseUrl(t *testing.T) {
	c := validConfig()
	c.Api.BaseUrl = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroInterval(t *testing.T) {
	c := validConfig()
	c.Monitor.Interval = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyStorePath(t *testing.T) {
	c := validConfig()
	c.Store.FilePath = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_NoChannels(t *testing.T) {
	c := validConfig()
	c.Channels.Local.Enabled = false
	c.Channels.Relay.Enabled = false
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_RelayOnly(t *testing.T) {
	c := validConfig()
	c.Channels.Local.Enabled = false
	c.Channels.Relay.Enabled = true
	v := NewCnfValidator(c)
	assert.NoError(t, v.Validate())
}
