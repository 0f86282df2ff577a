package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Overpass API defaults
const OVERPASS_ENDPOINT = "https://overpass-api.de/api/interpreter"
const OVERPASS_TIMEOUT_SECONDS = 25

// Request limit defaults
const MAX_BBOX_SIZE = 0.1
const MAX_FEATURE_TYPES = 20
const MAX_ELEMENTS_PER_REQUEST = 50000

// Server / output defaults
const HTTP_ADDRESS = ":8080"
const OUTPUT_DIR = "api_outputs"
const SESSION_TTL_MINUTES = 60
const SESSION_CLEANUP_SCHEDULE_MINUTES = 10

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const OVERPASS_RESPONSE_RESOURCE = "overpass_response.json"

// Config carries all process-wide settings. It is built once at startup and
// passed into components; nothing mutates it afterwards.
type Config struct {
	MaxBBoxSize           float64
	MaxFeatureTypes       int
	MaxElementsPerRequest int

	OverpassEndpoint string
	OverpassTimeout  time.Duration

	HTTPAddress      string
	OutputDir        string
	SessionTTL       time.Duration
	FeatureTypesPath string

	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

// Load builds a Config from the environment, falling back to the defaults
// above for anything unset.
func Load() *Config {
	return &Config{
		MaxBBoxSize:           envFloat("MAX_BBOX_SIZE", MAX_BBOX_SIZE),
		MaxFeatureTypes:       envInt("MAX_FEATURE_TYPES", MAX_FEATURE_TYPES),
		MaxElementsPerRequest: envInt("MAX_ELEMENTS_PER_REQUEST", MAX_ELEMENTS_PER_REQUEST),
		OverpassEndpoint:      envString("OVERPASS_ENDPOINT", OVERPASS_ENDPOINT),
		OverpassTimeout:       time.Duration(envInt("OVERPASS_TIMEOUT_SECONDS", OVERPASS_TIMEOUT_SECONDS)) * time.Second,
		HTTPAddress:           envString("HTTP_ADDRESS", HTTP_ADDRESS),
		OutputDir:             envString("OUTPUT_DIR", OUTPUT_DIR),
		SessionTTL:            time.Duration(envInt("SESSION_TTL_MINUTES", SESSION_TTL_MINUTES)) * time.Minute,
		FeatureTypesPath:      envString("FEATURE_TYPES_PATH", ""),
		RedisAddress:          envString("REDIS_DB_ADDRESS", REDIS_DB_ADDRESS),
		RedisPassword:         envString("REDIS_DB_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:               envInt("REDIS_DB", REDIS_DB),
	}
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(name string, fallback float64) float64 {
	if v := os.Getenv(name); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
