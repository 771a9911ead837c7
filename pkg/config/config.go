package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Defaults applied when the config file is missing or leaves a field unset.
const (
	DefaultListenAddr          = ":8080"
	DefaultCoursesPageSlug     = "courses"
	DefaultCompletionThreshold = 70
)

type Config struct {
	// DBPath is the SQLite content database.
	DBPath string `toml:"db_path"`

	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string `toml:"listen_addr"`

	// BaseURL prefixes every generated content link. No trailing slash.
	BaseURL string `toml:"base_url"`

	// CoursesPageSlug is the host's courses page slug used in lesson URLs:
	// {base_url}/{courses_page_slug}/{course_slug}/{lesson_id}/
	CoursesPageSlug string `toml:"courses_page_slug"`

	// CompletionThreshold is the progress percentage at or above which a
	// course counts as completed.
	CompletionThreshold int `toml:"course_completion_threshold"`

	Updater *UpdaterConfig `toml:"updater,omitempty"`
}

// UpdaterConfig configures the release update checker. An empty repo
// disables the check.
type UpdaterConfig struct {
	Repo  string `toml:"repo"`
	Token string `toml:"token,omitempty"`
}

func GetDefaultConfig() (*Config, error) {
	dbPath, err := GetDefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("getting default database path: %w", err)
	}
	return &Config{
		DBPath:              dbPath,
		ListenAddr:          DefaultListenAddr,
		CoursesPageSlug:     DefaultCoursesPageSlug,
		CompletionThreshold: DefaultCompletionThreshold,
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.DBPath == "" {
		dbPath, err := GetDefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("getting default database path: %w", err)
		}
		config.DBPath = dbPath
	}

	if config.ListenAddr == "" {
		config.ListenAddr = DefaultListenAddr
	}

	if config.CoursesPageSlug == "" {
		config.CoursesPageSlug = DefaultCoursesPageSlug
	}

	if config.CompletionThreshold <= 0 {
		config.CompletionThreshold = DefaultCompletionThreshold
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dbPath := c.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDBPath()
		if err != nil {
			return fmt.Errorf("getting default database path: %w", err)
		}
	}

	// Replace the placeholder db_path with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/studysearch/studysearch.db", dbPath, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

// GetDefaultStorageDir returns the default directory for the database
func GetDefaultStorageDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	storageDir := filepath.Join(dataDir, "studysearch")

	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", storageDir, err)
	}

	return storageDir, nil
}

// GetDefaultDBPath returns the default database path in the user's data directory
func GetDefaultDBPath() (string, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(storageDir, "studysearch.db"), nil
}

// GetConfigDir returns the configuration directory for studysearch
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	appConfigDir := filepath.Join(configDir, "studysearch")

	if err := os.MkdirAll(appConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", appConfigDir, err)
	}

	return appConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
