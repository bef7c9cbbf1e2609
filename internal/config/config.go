package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is stripped from environment variables before they become keys.
// WASM_PACK_LOG_LEVEL becomes log.level.
const EnvPrefix = "WASM_PACK_"

// Settings is everything wasm-pack reads from configuration. Nothing is ever
// written back.
type Settings struct {
	Log     Log     `koanf:"log"`
	Install Install `koanf:"install"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type Install struct {
	Dir string `koanf:"dir"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"install-dir": "install.dir",
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	return Settings{
		Log: Log{Level: "warn", Format: "text"},
	}
}

// Load layers the config file, then WASM_PACK_* environment variables, then
// flags that were explicitly set. Later layers win. flagSet and configFile are
// both optional.
func Load(flagSet *pflag.FlagSet, configFile string) (Settings, error) {
	k := koanf.New(".")

	// Load from config file if provided
	if configFile != "" {
		parser, err := parserForFile(configFile)
		if err != nil {
			return Settings{}, fmt.Errorf("unsupported config file format: %w", err)
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return Settings{}, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// This will convert WASM_PACK_FOO_BAR to foo.bar
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return Settings{}, fmt.Errorf("error loading environment: %w", err)
	}

	// Load from command-line flags (highest precedence)
	if flagSet != nil {
		provider := posflag.ProviderWithFlag(flagSet, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flagSet, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Settings{}, fmt.Errorf("error loading flags: %w", err)
		}
	}

	settings := Defaults()
	if err := k.Unmarshal("", &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}

	return settings, nil
}

func parserForFile(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".env":
		return dotenv.Parser(), nil
	default:
		return nil, fmt.Errorf("unknown file extension: %s", ext)
	}
}
