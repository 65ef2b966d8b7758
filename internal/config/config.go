package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appDirName      = "taskmaestro"
	defaultDBName   = "taskmaestro.db"
	defaultState    = "state.json"
	defaultLogName  = "taskmaestro.log"
	defaultYAMLPath = "taskmaestro.yml"
	defaultEnvPath  = ".env"
)

type RuntimeConfig struct {
	DBPath         string `yaml:"db_path"`
	StateFile      string `yaml:"state_file"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
	Development    bool   `yaml:"development"`
	AnalyticsDays  int    `yaml:"analytics_days"`
	Timezone       string `yaml:"timezone"`
	SeedSampleData bool   `yaml:"seed_sample_data"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		LogLevel:       "info",
		AnalyticsDays:  7,
		Timezone:       "Local",
		SeedSampleData: true,
	}
}

// Load layers defaults, the YAML file, .env and TASKMAESTRO_* variables, in
// that order, and fills in data paths that are still empty.
func Load() (RuntimeConfig, error) {
	return LoadFrom(os.Getenv("TASKMAESTRO_CONFIG"), defaultEnvPath)
}

func LoadFrom(yamlPath, envPath string) (RuntimeConfig, error) {
	if err := loadDotEnv(envPath); err != nil {
		return RuntimeConfig{}, err
	}
	if yamlPath == "" {
		yamlPath = os.Getenv("TASKMAESTRO_CONFIG")
	}
	if yamlPath == "" {
		yamlPath = defaultYAMLPath
	}
	cfg, err := FromYAML(yamlPath, DefaultRuntimeConfig())
	if err != nil {
		return RuntimeConfig{}, err
	}
	cfg = FromEnv(cfg)
	if err := cfg.resolvePaths(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, cfg.Validate()
}

// FromYAML overlays the keys present in the file at path. A missing file
// leaves base unchanged.
func FromYAML(path string, base RuntimeConfig) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func FromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKMAESTRO_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKMAESTRO_STATE_FILE"); ok {
		cfg.StateFile = v
	}
	if v, ok := getEnvString("TASKMAESTRO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKMAESTRO_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvBool("TASKMAESTRO_DEV"); ok {
		cfg.Development = v
	}
	if v, ok := getEnvInt("TASKMAESTRO_ANALYTICS_DAYS"); ok && v > 0 {
		cfg.AnalyticsDays = v
	}
	if v, ok := getEnvString("TASKMAESTRO_TIMEZONE"); ok {
		cfg.Timezone = v
	}
	if v, ok := getEnvBool("TASKMAESTRO_SEED_SAMPLE_DATA"); ok {
		cfg.SeedSampleData = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if c.AnalyticsDays <= 0 {
		return fmt.Errorf("config: analytics_days must be positive, got %d", c.AnalyticsDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty and "Local" mean the system zone.
func (c RuntimeConfig) Location() (*time.Location, error) {
	switch strings.TrimSpace(c.Timezone) {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DataDir returns $XDG_DATA_HOME/taskmaestro, falling back to
// ~/.local/share/taskmaestro.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appDirName), nil
}

// resolvePaths fills empty paths from the data dir. LogFile "-" means stderr.
func (c *RuntimeConfig) resolvePaths() error {
	if c.DBPath != "" && c.StateFile != "" && c.LogFile != "" {
		return ensureParent(c.DBPath)
	}
	dir, err := DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, defaultDBName)
	}
	if c.StateFile == "" {
		c.StateFile = filepath.Join(dir, defaultState)
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, defaultLogName)
	}
	return ensureParent(c.DBPath)
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
