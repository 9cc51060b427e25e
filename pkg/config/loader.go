package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/paths"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// MODINSTALL_INSTALL_DIR and MODINSTALL_LOG_FILE.
const EnvPrefix = "MODINSTALL_"

type documentFormat string

const (
	formatJSON documentFormat = "json"
	formatTOML documentFormat = "toml"
	formatYAML documentFormat = "yaml"
)

// Load reads, layers, and validates the config document at path.
// Layering order: built-in defaults, then the file, then MODINSTALL_*
// environment overrides for the scalar settings.
func Load(path string) (*Config, error) {
	configPath, err := filepath.Abs(paths.ExpandHome(path))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "could not resolve config path %s", path)
	}

	// The raw document is kept around for the declaration-order scan below.
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "could not read config file %s", configPath)
	}

	parser, format := parserFor(configPath)

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load config defaults")
	}

	if err := k.Load(file.Provider(configPath), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid %s in %s", format, configPath)
	}

	// Env overrides only cover the scalar settings; modules come from the
	// file alone.
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "could not decode config %s", configPath)
	}

	order, err := moduleOrder(raw, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "could not read module order from %s", configPath)
	}
	cfg.moduleOrder = normalizeOrder(order, cfg.Modules)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"install_dir": "",
		"log_file":    paths.DefaultLogFile,
	}
}

func parserFor(path string) (koanf.Parser, documentFormat) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), formatTOML
	case ".yaml", ".yml":
		return yaml.Parser(), formatYAML
	default:
		return json.Parser(), formatJSON
	}
}

// normalizeOrder drops order entries that did not survive decoding and
// appends any decoded module the order scan missed, so the two views of the
// document can never disagree.
func normalizeOrder(order []string, modules map[string]ModuleConfig) []string {
	result := make([]string, 0, len(modules))
	seen := make(map[string]bool, len(modules))
	for _, name := range order {
		if _, ok := modules[name]; ok && !seen[name] {
			result = append(result, name)
			seen[name] = true
		}
	}
	var missing []string
	for name := range modules {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return append(result, missing...)
}
