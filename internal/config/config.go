// Package config loads the daemon and CLI configuration. Values come
// from nodoff.yaml in /etc/nodoff or ~/.config/nodoff, overridden by
// NODOFF_* environment variables. A missing file is not an error; the
// defaults describe a usable installation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/sched"
	"github.com/nodoff/nodoff/pkg/logger"
)

const AppName = "nodoff"

// Config is the validated runtime configuration.
type Config struct {
	Defaults   Defaults
	Tick       time.Duration
	SocketPath string
	RPC        RPC
	Log        Log
	Dispatch   map[common.Action][]string
}

// Defaults seed a schedule when the CLI is invoked without arguments.
type Defaults struct {
	Action   common.Action
	Duration time.Duration
	At       string
}

// RPC configures the localhost JSON-RPC and WebSocket surface.
type RPC struct {
	Enabled bool
	Port    int
	Secret  string
}

// Log configures daemon log output.
type Log struct {
	Level logger.Level
	File  string
}

// Load reads the configuration from the standard locations.
func Load(l logger.Logger) (*Config, error) {
	return load(l, nil)
}

// load lets tests prepend explicit search directories.
func load(l logger.Logger, extraPaths []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	for _, p := range extraPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(filepath.Join("/etc", AppName))
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", AppName))
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			l.Warning("failed to read config: %s", err.Error())
		}
	}

	return build(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.action", string(common.ActionHibernate))
	v.SetDefault("defaults.duration", "30m")
	v.SetDefault("defaults.at", "23:00")
	v.SetDefault("tick.interval", "1s")
	v.SetDefault("socket.path", "")
	v.SetDefault("rpc.enabled", false)
	v.SetDefault("rpc.port", 3942)
	v.SetDefault("rpc.secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

func build(v *viper.Viper) (*Config, error) {
	action, err := common.ParseAction(v.GetString("defaults.action"))
	if err != nil {
		return nil, fmt.Errorf("defaults.action: %w", err)
	}

	duration := v.GetDuration("defaults.duration")
	if duration <= 0 {
		return nil, fmt.Errorf("defaults.duration must be positive, got %q", v.GetString("defaults.duration"))
	}

	at := v.GetString("defaults.at")
	if _, _, err := sched.ParseClock(at); err != nil {
		return nil, fmt.Errorf("defaults.at: %w", err)
	}

	tick := v.GetDuration("tick.interval")
	if tick <= 0 {
		return nil, fmt.Errorf("tick.interval must be positive, got %q", v.GetString("tick.interval"))
	}

	port := v.GetInt("rpc.port")
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid rpc.port: %d", port)
	}

	level, err := logger.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	dispatch := make(map[common.Action][]string)
	for _, a := range common.Actions() {
		key := "dispatch.command." + string(a)
		if !v.IsSet(key) {
			continue
		}
		argv := v.GetStringSlice(key)
		if len(argv) == 0 || argv[0] == "" {
			return nil, fmt.Errorf("%s: empty command", key)
		}
		dispatch[a] = argv
	}

	return &Config{
		Defaults: Defaults{
			Action:   action,
			Duration: duration,
			At:       at,
		},
		Tick:       tick,
		SocketPath: v.GetString("socket.path"),
		RPC: RPC{
			Enabled: v.GetBool("rpc.enabled"),
			Port:    port,
			Secret:  v.GetString("rpc.secret"),
		},
		Log: Log{
			Level: level,
			File:  v.GetString("log.file"),
		},
		Dispatch: dispatch,
	}, nil
}
