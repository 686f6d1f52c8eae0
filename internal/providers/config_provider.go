package providers

import (
	"fmt"
	"path/filepath"
	"skinwatch/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const AppName = "skinwatch"

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("store.filePath", "skinwatch.dat")
	v.SetDefault("store.compress", true)
	v.SetDefault("monitor.taskName", "high-risk-check")
	v.SetDefault("monitor.interval", 15*time.Minute)
	v.SetDefault("monitor.background", true)
	v.SetDefault("channels.local.enabled", true)
	v.SetDefault("channels.local.output", "-")
	v.SetDefault("channels.relay.enabled", false)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 16)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8089)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", ".")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	v.BindEnv("api.baseUrl", "SKINWATCH_API_URL")
	v.BindEnv("logger.level", "SKINWATCH_LOG_LEVEL")
	v.BindEnv("monitor.interval", "SKINWATCH_INTERVAL")
	v.BindEnv("store.filePath", "SKINWATCH_STORE_PATH")
	v.BindEnv("channels.relay.enabled", "SKINWATCH_RELAY_ENABLED")
	v.BindEnv("channels.local.enabled", "SKINWATCH_LOCAL_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
