package config

import (
	"os"
	"path/filepath"
	"strconv"

	"riskcast/internal/roadmap"
	"riskcast/internal/simulation"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	EnableMermaidCharts bool
	MetricsAddr         string
	Simulation          SimulationConfig
}

// SimulationConfig holds engine defaults applied when a caller omits a value.
type SimulationConfig struct {
	DefaultIterations int
	MaxIterations     int
	BinCount          int
	HorizonDays       float64
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		logDir = filepath.Join(dataPath, "logs")
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	sim := SimulationConfig{
		DefaultIterations: getEnvInt("RISKCAST_DEFAULT_ITERATIONS", simulation.DefaultIterations),
		MaxIterations:     getEnvInt("MAX_ITERATIONS", 1_000_000),
		BinCount:          getEnvInt("RISKCAST_BIN_COUNT", simulation.DefaultBinCount),
		HorizonDays:       getEnvFloat("RISKCAST_HORIZON_DAYS", roadmap.DefaultHorizonDays),
	}

	if sim.DefaultIterations < 1 {
		log.Warn().Int("value", sim.DefaultIterations).Msg("RISKCAST_DEFAULT_ITERATIONS must be >= 1, using default")
		sim.DefaultIterations = simulation.DefaultIterations
	}
	if sim.MaxIterations < sim.DefaultIterations {
		log.Warn().Int("value", sim.MaxIterations).Msg("MAX_ITERATIONS below default iterations, raising it")
		sim.MaxIterations = sim.DefaultIterations
	}
	if sim.BinCount < 1 {
		log.Warn().Int("value", sim.BinCount).Msg("RISKCAST_BIN_COUNT must be >= 1, using default")
		sim.BinCount = simulation.DefaultBinCount
	}
	if sim.HorizonDays <= 0 {
		log.Warn().Float64("value", sim.HorizonDays).Msg("RISKCAST_HORIZON_DAYS must be > 0, using default")
		sim.HorizonDays = roadmap.DefaultHorizonDays
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              logDir,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
		MetricsAddr:         getEnv("METRICS_ADDR", ""),
		Simulation:          sim,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric environment value")
	}
	return fallback
}
