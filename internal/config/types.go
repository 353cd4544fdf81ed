// Package config loads gqlfront settings from defaults, gqlfront.yaml,
// GQLFRONT_ environment variables and command line flags.
package config

import (
	"fmt"
	"time"

	"github.com/hanpama/gqlfront/internal/language/parser"
	"github.com/hanpama/gqlfront/internal/validator"
	"github.com/hanpama/gqlfront/internal/validator/rules"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Defaults.
const (
	DefaultConfigFile = "gqlfront.yaml"
	DefaultAddr       = ":8080"
	DefaultTimeout    = 10 * time.Second
	DefaultService    = "gqlfront"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

type Config struct {
	Schema    []string     `koanf:"schema"`
	MaxDepth  int          `koanf:"max_depth"`
	MaxErrors int          `koanf:"max_errors"`
	Output    string       `koanf:"output"`
	Rules     RulesConfig  `koanf:"rules"`
	Server    ServerConfig `koanf:"server"`
	Otel      OtelConfig   `koanf:"otel"`
	Log       LogConfig    `koanf:"log"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

type RulesConfig struct {
	Disabled             []string `koanf:"disabled"`
	QueryDepth           int      `koanf:"query_depth"`
	DisableIntrospection bool     `koanf:"disable_introspection"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	Timeout      time.Duration `koanf:"timeout"`
	Pretty       bool          `koanf:"pretty"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"`
	CORS         []string      `koanf:"cors"`
}

type OtelConfig struct {
	Endpoint string `koanf:"endpoint"`
	Service  string `koanf:"service"`
	Insecure bool   `koanf:"insecure"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Check reports settings that cannot be used.
func (c *Config) Check() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	for _, name := range c.Rules.Disabled {
		if _, ok := rules.ByName(name); !ok {
			return fmt.Errorf("unknown rule %q in rules.disabled", name)
		}
	}
	if c.Rules.QueryDepth < 0 {
		return fmt.Errorf("rules.query_depth must not be negative")
	}
	return nil
}

// RuleSet returns the specified rules minus the disabled ones, followed by
// the optional rules that are turned on.
func (c *Config) RuleSet() []validator.Rule {
	rs := rules.Without(rules.Specified(), c.Rules.Disabled...)
	if c.Rules.QueryDepth > 0 {
		rs = append(rs, rules.QueryDepth(c.Rules.QueryDepth))
	}
	if c.Rules.DisableIntrospection {
		rs = append(rs, rules.DisableIntrospection())
	}
	return rs
}

// ParserOptions returns the parser options the config asks for.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(c.MaxDepth)}
}
