package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		SessionSignKey  string   `json:"session_sign_key"`
		SessionIssuer   string   `json:"session_issuer"`
		SessionDuration Duration `json:"session_duration"`
		ArgonMemory     uint32   `json:"argon_memory"`
		ArgonTime       uint32   `json:"argon_time"`
		ArgonThreads    uint8    `json:"argon_threads"`
		Version         string   `json:"version"`
		LogLevel        string   `json:"log_level"`
	} `json:"app"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress           string   `json:"http_address"`
		RequestTimeout        Duration `json:"request_timeout"`
		ShutdownTimeout       Duration `json:"shutdown_timeout"`
		SecureCookies         bool     `json:"secure_cookies"`
		TrustForwardedHeaders bool     `json:"trust_forwarded_headers"`
	} `json:"server"`

	Throttle struct {
		Backend     string   `json:"backend"`
		RedisURL    string   `json:"redis_url"`
		MaxFailures int      `json:"max_failures"`
		Window      Duration `json:"window"`
	} `json:"throttle"`

	Workers struct {
		SessionCleanupInterval Duration `json:"session_cleanup_interval"`
		ThrottleSweepInterval  Duration `json:"throttle_sweep_interval"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SessionSignKey:  j.App.SessionSignKey,
			SessionIssuer:   j.App.SessionIssuer,
			SessionDuration: time.Duration(j.App.SessionDuration),
			ArgonMemory:     j.App.ArgonMemory,
			ArgonTime:       j.App.ArgonTime,
			ArgonThreads:    j.App.ArgonThreads,
			Version:         j.App.Version,
			LogLevel:        j.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: j.Storage.DB.Driver,
				DSN:    j.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:           j.Server.HTTPAddress,
			RequestTimeout:        time.Duration(j.Server.RequestTimeout),
			ShutdownTimeout:       time.Duration(j.Server.ShutdownTimeout),
			SecureCookies:         j.Server.SecureCookies,
			TrustForwardedHeaders: j.Server.TrustForwardedHeaders,
		},
		Throttle: Throttle{
			Backend:     j.Throttle.Backend,
			RedisURL:    j.Throttle.RedisURL,
			MaxFailures: j.Throttle.MaxFailures,
			Window:      time.Duration(j.Throttle.Window),
		},
		Workers: Workers{
			SessionCleanupInterval: time.Duration(j.Workers.SessionCleanupInterval),
			ThrottleSweepInterval:  time.Duration(j.Workers.ThrottleSweepInterval),
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
