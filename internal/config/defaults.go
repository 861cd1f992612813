package config

import "time"

const defaultDotEnvPath = ".env"

// defaults is merged last, so it only fills fields left empty by every
// other source.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer:   "shipy",
			SessionDuration: 14 * 24 * time.Hour,
			ArgonMemory:     64 * 1024,
			ArgonTime:       3,
			ArgonThreads:    2,
			LogLevel:        "info",
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
				DSN:    "data/shipy.db",
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Throttle: Throttle{
			Backend:     ThrottleBackendMemory,
			MaxFailures: 5,
			Window:      15 * time.Minute,
		},
		Workers: Workers{
			SessionCleanupInterval: time.Hour,
			ThrottleSweepInterval:  5 * time.Minute,
		},
	}
}
