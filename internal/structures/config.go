package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host" validate:"required"`
	Port    int    `yaml:"port" validate:"required|uint|min:1"`
}

type ApiConfig struct {
	BaseUrl string        `yaml:"baseUrl" validate:"required"`
	Timeout time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type MonitorConfig struct {
	TaskName   string        `yaml:"taskName" validate:"required"`
	Interval   time.Duration `yaml:"interval" validate:"required|min:1"`
	Background bool          `yaml:"background"`
	RunOnStart bool          `yaml:"runOnStart"`
}

type LocalChannelConfig struct {
	Enabled bool   `yaml:"enabled"`
	Output  string `yaml:"output"`
}

type RelayChannelConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ChannelsConfig struct {
	Local LocalChannelConfig `yaml:"local"`
	Relay RelayChannelConfig `yaml:"relay"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string         `yaml:"-"`
	Debug     bool           `yaml:"-"`
	Path      string         `yaml:"-"`
	Api       ApiConfig      `yaml:"api"`
	Store     StoreConfig    `yaml:"store"`
	Monitor   MonitorConfig  `yaml:"monitor"`
	Channels  ChannelsConfig `yaml:"channels"`
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}
