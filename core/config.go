package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config carries all runtime settings. It is built once at startup
	// via NewConfig and passed explicitly to every consumer.
	Config struct {
		Env       string
		Debug     bool
		TestMode  bool
		AppName   string
		SecretKey []byte

		// OfflineMode enables the local demo registry instead of the
		// remote backend; demo credentials are seeded on first run.
		OfflineMode bool
		// MockLatency is an artificial delay applied to offline
		// login/register, for UI parity with a real backend. Zero by default.
		MockLatency time.Duration

		// StoragePath is the directory holding the local key-value store.
		StoragePath string

		Client ClientConfig

		RollbarToken string
		Build        string
	}

	// ClientConfig groups the API client settings.
	ClientConfig struct {
		// BaseURL, when set, overrides base address resolution entirely.
		BaseURL string
		// Origin is the portal origin; requests go through its /api
		// reverse proxy unless DevServerPort is set.
		Origin string
		// DevServerPort routes requests directly to a local backend.
		DevServerPort int
		Timeout       time.Duration
	}
)

// NewConfig loads the configuration from defaults, an optional
// config/.env.<env> file and the environment.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Classpoint")
	conf.SetDefault("secretKey", "f1&yl&5ot+8=$b@(xw+q5o)#u%2dp-b2vd#)+qt3r8n0_9b+hu")
	conf.SetDefault("offlineMode", false)
	conf.SetDefault("mockLatency", time.Duration(0))
	conf.SetDefault("storagePath", defaultStoragePath())
	conf.SetDefault("apiBaseUrl", "")
	conf.SetDefault("apiOrigin", "http://localhost:8000")
	conf.SetDefault("devServerPort", 0)
	conf.SetDefault("clientTimeout", 30*time.Second)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("build", "dev")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:         env,
		Debug:       conf.GetBool("debug"),
		TestMode:    conf.GetBool("testMode"),
		AppName:     conf.GetString("appName"),
		SecretKey:   []byte(conf.GetString("secretKey")),
		OfflineMode: conf.GetBool("offlineMode"),
		MockLatency: conf.GetDuration("mockLatency"),
		StoragePath: conf.GetString("storagePath"),
		Client: ClientConfig{
			BaseURL:       conf.GetString("apiBaseUrl"),
			Origin:        conf.GetString("apiOrigin"),
			DevServerPort: conf.GetInt("devServerPort"),
			Timeout:       conf.GetDuration("clientTimeout"),
		},
		RollbarToken: conf.GetString("rollbarToken"),
		Build:        conf.GetString("build"),
	}
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".classpoint"
	}
	return filepath.Join(dir, "classpoint")
}
