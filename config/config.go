package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/ChristianF88/sortx/algorithms"
	"github.com/ChristianF88/sortx/workload"
)

// DefaultSeed is used when neither the config nor the flags provide one.
const DefaultSeed int64 = 42

type GlobalConfig struct {
	Seed           int64  `toml:"seed"`
	Workers        int    `toml:"workers"`
	MaxAuxElements int    `toml:"maxAuxElements"`
	ReportPath     string `toml:"reportPath"`
	PlotPath       string `toml:"plotPath"`
}

// ScenarioConfig describes one benchmark scenario ([bench.<name>] table)
type ScenarioConfig struct {
	Name         string                `toml:"-"`
	Distribution workload.Distribution `toml:"distribution"`
	Sizes        []int                 `toml:"sizes"`
	Algorithms   []string              `toml:"algorithms"`
	Repeat       int                   `toml:"repeat"`
}

type Config struct {
	Global    *GlobalConfig
	Scenarios map[string]*ScenarioConfig
}

// NewConfig returns a config with defaults and no scenarios.
func NewConfig() *Config {
	return &Config{
		Global:    &GlobalConfig{Seed: DefaultSeed},
		Scenarios: make(map[string]*ScenarioConfig),
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(string(configData))
}

// ParseConfig decodes TOML config text.
func ParseConfig(data string) (*Config, error) {
	var rawConfig map[string]any
	if _, err := toml.Decode(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := NewConfig()

	for key, value := range rawConfig {
		switch key {
		case "global":
			if globalMap, ok := value.(map[string]any); ok {
				global, err := parseGlobalConfig(globalMap)
				if err != nil {
					return nil, fmt.Errorf("parsing global config: %w", err)
				}
				config.Global = global
			}
		case "bench":
			benchMap, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("bench must be a table")
			}
			for name, subValue := range benchMap {
				scenarioMap, ok := subValue.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("bench.%s must be a table", name)
				}
				scenario, err := parseScenarioConfig(name, scenarioMap)
				if err != nil {
					return nil, fmt.Errorf("parsing scenario %q: %w", name, err)
				}
				config.Scenarios[name] = scenario
			}
		default:
			return nil, fmt.Errorf("unknown config section %q", key)
		}
	}

	return config, nil
}

func parseGlobalConfig(m map[string]any) (*GlobalConfig, error) {
	config := &GlobalConfig{Seed: DefaultSeed}
	if v, ok := m["seed"].(int64); ok {
		config.Seed = v
	}
	if v, ok := m["workers"].(int64); ok {
		config.Workers = int(v)
	}
	if v, ok := m["maxAuxElements"].(int64); ok {
		config.MaxAuxElements = int(v)
	}
	if v, ok := m["reportPath"].(string); ok {
		config.ReportPath = v
	}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	if config.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", config.Workers)
	}
	if config.MaxAuxElements < 0 {
		return nil, fmt.Errorf("maxAuxElements must not be negative, got %d", config.MaxAuxElements)
	}
	return config, nil
}

func parseScenarioConfig(name string, m map[string]any) (*ScenarioConfig, error) {
	config := &ScenarioConfig{
		Name:         name,
		Distribution: workload.Random,
		Algorithms:   algorithms.Names(),
		Repeat:       1,
	}
	if v, ok := m["distribution"]; ok {
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("distribution must be a string, got %v", v)
		}
		config.Distribution = workload.Distribution(str)
	}
	if v, ok := m["sizes"].([]any); ok {
		for _, item := range v {
			size, ok := item.(int64)
			if !ok {
				return nil, fmt.Errorf("sizes must be integers, got %v", item)
			}
			config.Sizes = append(config.Sizes, int(size))
		}
	}
	if v, ok := m["algorithms"]; ok {
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("algorithms must be a list, got %v", v)
		}
		config.Algorithms = nil
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("algorithms must be strings, got %v", item)
			}
			config.Algorithms = append(config.Algorithms, str)
		}
	}
	if v, ok := m["repeat"].(int64); ok {
		config.Repeat = int(v)
	}
	return config, nil
}

// Validate checks every scenario against the registered algorithms and
// distributions.
func (c *Config) Validate() error {
	if c.Global == nil {
		return fmt.Errorf("global configuration section is missing")
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required (e.g., [bench.random_small])")
	}
	for name, s := range c.Scenarios {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", name, err)
		}
	}
	return nil
}

func (s *ScenarioConfig) Validate() error {
	if !workload.IsValid(s.Distribution) {
		return fmt.Errorf("unknown distribution %q (available: %v)", s.Distribution, workload.Distributions())
	}
	if len(s.Sizes) == 0 {
		return fmt.Errorf("sizes must not be empty")
	}
	for _, size := range s.Sizes {
		if size < 0 {
			return fmt.Errorf("sizes must not be negative, got %d", size)
		}
		if size > workload.MaxSize {
			return fmt.Errorf("sizes must not exceed %d, got %d", workload.MaxSize, size)
		}
	}
	if len(s.Algorithms) == 0 {
		return fmt.Errorf("algorithms must not be empty")
	}
	for _, name := range s.Algorithms {
		if !algorithms.IsValid(name) {
			return fmt.Errorf("unknown algorithm %q (available: %v)", name, algorithms.Names())
		}
	}
	if s.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", s.Repeat)
	}
	return nil
}

// WorkerCount resolves the configured worker count, defaulting to one per CPU.
func (g *GlobalConfig) WorkerCount() int {
	if g == nil || g.Workers <= 0 {
		return runtime.NumCPU()
	}
	return g.Workers
}
