// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package config loads the client's runtime configuration from a .env
// file and the environment.
package config

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// AppConfig is the full set of tunables this client reads at startup.
type AppConfig struct {
	Name     string `mapstructure:"service_name" validate:"required"`
	Version  string `mapstructure:"version" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required"`
	LogPath  string `mapstructure:"log_path"`

	// PreferredPort is tried first for the local control socket; on bind
	// failure the OS assigns a free port instead.
	PreferredPort int `mapstructure:"preferred_port" validate:"required"`

	// InferenceURL is the remote service's websocket endpoint.
	InferenceURL string `mapstructure:"inference_url" validate:"required"`

	// ListenWindow is the fixed-duration microphone capture window used
	// when hands-free mode is off.
	ListenWindow time.Duration `mapstructure:"listen_window"`

	// HandsFreeEnabled opts the pipeline into VAD-terminated capture
	// instead of the fixed listening window.
	HandsFreeEnabled bool `mapstructure:"hands_free_enabled"`

	// EchoGateReleaseDelay keeps the echo gate raised briefly after
	// playback reports empty, absorbing device buffering tail.
	EchoGateReleaseDelay time.Duration `mapstructure:"echo_gate_release_delay"`
}

// Load reads configuration from ENV_PATH (or ./.env) and the process
// environment, applies defaults, and validates the result.
func Load() (*AppConfig, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))

	v.AddConfigPath(".")
	v.SetConfigName(".env")
	if path := os.Getenv("ENV_PATH"); path != "" {
		log.Printf("env path %v", path)
		v.SetConfigFile(path)
	}
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Printf("reading from environment variables only: %v", err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "lia-client")
	v.SetDefault("VERSION", "0.1.0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PATH", "")
	v.SetDefault("PREFERRED_PORT", 3333)
	v.SetDefault("INFERENCE_URL", "ws://127.0.0.1:8000/ws/lia")
	v.SetDefault("LISTEN_WINDOW", "4s")
	v.SetDefault("HANDS_FREE_ENABLED", false)
	v.SetDefault("ECHO_GATE_RELEASE_DELAY", "250ms")
}
