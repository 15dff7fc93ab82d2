package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "taskhive-backend/internal/util/env"
	"taskhive-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string            `env:"DATABASE_DSN"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"`
	HTTPPort    string            `env:"HTTP_PORT"   envDefault:"4010"`
	JwtSecret   string            `env:"JWT_SECRET"`

	EnableHTTPS bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	HTTPSPort   string `env:"HTTPS_PORT"   envDefault:"4443"`
	CertsDir    string `env:"CERTS_DIR"    envDefault:"./certs"`

	// oauth
	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	DataFolder     string `env:"DATA_FOLDER" envDefault:"./data"`
	TestDataFolder string
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	if env.IsTesting {
		// tests run against an embedded sqlite database and need no .env
		env.EnvMode = env_utils.EnvModeDevelopment
		env.JwtSecret = "test-secret"
		env.HTTPPort = "4010"
		env.TestDataFolder = filepath.Join(os.TempDir(), "taskhive-test")
		env.DataFolder = env.TestDataFolder
		log.Info("Running in testing mode, skipping .env")
		return
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		log.Error("Error loading .env file: could not find .env in any location")
		os.Exit(1)
	}

	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.JwtSecret == "" {
		log.Error("JWT_SECRET is empty")
		os.Exit(1)
	}

	if env.EnvMode != env_utils.EnvModeDevelopment && env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	log.Info("Environment variables loaded successfully!")
}
