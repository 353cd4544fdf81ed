package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/hanpama/gqlfront/internal/language/parser"
	"github.com/hanpama/gqlfront/internal/validator"
)

// EnvPrefix is the prefix of environment variables read by Load. A double
// underscore separates nesting levels: GQLFRONT_SERVER__ADDR sets
// server.addr.
const EnvPrefix = "GQLFRONT_"

// flagKeys maps flag names to config keys where they differ from the
// flag name with dashes turned into underscores.
var flagKeys = map[string]string{
	"addr":                  "server.addr",
	"timeout":               "server.timeout",
	"pretty":                "server.pretty",
	"max-body-bytes":        "server.max_body_bytes",
	"cors":                  "server.cors",
	"disable-rule":          "rules.disabled",
	"query-depth":           "rules.query_depth",
	"disable-introspection": "rules.disable_introspection",
	"otel-endpoint":         "otel.endpoint",
	"otel-service":          "otel.service",
	"otel-insecure":         "otel.insecure",
	"log-level":             "log.level",
	"log-format":            "log.format",
}

func defaults() map[string]any {
	return map[string]any{
		"schema":                      []string{},
		"max_depth":                   parser.DefaultMaxDepth,
		"max_errors":                  validator.DefaultMaxErrors,
		"output":                      OutputText,
		"rules.disabled":              []string{},
		"rules.query_depth":           0,
		"rules.disable_introspection": false,
		"server.addr":                 DefaultAddr,
		"server.timeout":              DefaultTimeout.String(),
		"server.pretty":               false,
		"server.max_body_bytes":       int64(1 << 20),
		"server.cors":                 []string{},
		"otel.endpoint":               "",
		"otel.service":                DefaultService,
		"otel.insecure":               false,
		"log.level":                   DefaultLogLevel,
		"log.format":                  DefaultLogFormat,
	}
}

// Load reads configuration. Precedence (highest to lowest): flags that were
// set explicitly, environment variables, the config file, defaults.
//
// When cfgFile is empty, gqlfront.yaml is read from the working directory
// if it exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := cfgFile != ""
	if !explicit {
		cfgFile = DefaultConfigFile
	}
	used := ""
	if _, err := os.Stat(cfgFile); err == nil {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		used = cfgFile
	} else if explicit {
		return nil, fmt.Errorf("config file: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	"schema":         true,
	"rules.disabled": true,
	"server.cors":    true,
}

// envKey turns GQLFRONT_SERVER__MAX_BODY_BYTES into server.max_body_bytes.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}
