package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	RootDirectory      string `koanf:"root_directory" default:"/"`
	DefaultDirectory   string `koanf:"default_directory"`
	ServerHost         string `koanf:"server_host" default:"0.0.0.0"`
	ServerPort         int    `koanf:"server_port" default:"3690"`
	ScanConcurrency    int    `koanf:"scan_concurrency" default:"16"`
	EmptyOnScanFailure bool   `koanf:"empty_on_scan_failure"`
	RestrictToRoot     bool   `koanf:"restrict_to_root" default:"true"`
}

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/fsbrowse.yaml"
)

// New loads the config from its defaults, then the YAML config file, then
// environment variables, each overriding the previous one.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	known := knownKeys()
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load environment")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.DefaultDirectory == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		cfg.DefaultDirectory = wd
	}
	cfg.RootDirectory = filepath.Clean(cfg.RootDirectory)
	cfg.DefaultDirectory = filepath.Clean(cfg.DefaultDirectory)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config rooted at the filesystem root.
func NewForTest() *Config {
	return &Config{
		RootDirectory:    string(filepath.Separator),
		DefaultDirectory: string(filepath.Separator),
		ServerHost:       "127.0.0.1",
		ServerPort:       0,
		ScanConcurrency:  4,
		RestrictToRoot:   true,
	}
}

func (cfg *Config) validate() error {
	if !filepath.IsAbs(cfg.RootDirectory) {
		return invalid("RootDirectory", "must be an absolute path")
	}
	if !filepath.IsAbs(cfg.DefaultDirectory) {
		return invalid("DefaultDirectory", "must be an absolute path")
	}
	if cfg.ScanConcurrency < 1 {
		return invalid("ScanConcurrency", "must be at least 1")
	}
	if cfg.RestrictToRoot && !isWithin(cfg.DefaultDirectory, cfg.RootDirectory) {
		return invalid("DefaultDirectory", "must be within the root directory")
	}
	return nil
}

func invalid(field, reason string) error {
	key := toSnakeCase(field)
	return errors.Errorf("invalid config: %s (%s) %s", key, strings.ToUpper(key), reason)
}

func isWithin(dir, root string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// knownKeys returns the koanf keys of Config, so that unrelated environment
// variables aren't loaded.
func knownKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		keys[t.Field(i).Tag.Get("koanf")] = struct{}{}
	}
	return keys
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}

func (cfg *Config) String() string {
	return fmt.Sprintf("root=%s default=%s addr=%s:%d", cfg.RootDirectory, cfg.DefaultDirectory, cfg.ServerHost, cfg.ServerPort)
}
