package lib

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when --config is not given.
const DefaultConfigPath = "testrun.yaml"

// DefaultTimeout bounds the whole test run.
const DefaultTimeout = 300 * time.Second

const (
	defaultProject   = "Mergington High School Activities API"
	defaultCommand   = "pytest"
	defaultSourceDir = "src"
	defaultTestDir   = "tests"
)

// Config describes the test command the runner wraps.
type Config struct {
	Project   string
	Command   string
	SourceDir string
	TestDir   string
	Timeout   time.Duration
	ExtraArgs []string
}

type fileConfig struct {
	Project   string   `yaml:"project"`
	Command   string   `yaml:"command"`
	SourceDir string   `yaml:"source_dir"`
	TestDir   string   `yaml:"test_dir"`
	Timeout   string   `yaml:"timeout"`
	ExtraArgs []string `yaml:"extra_args"`
}

// LoadConfig reads the YAML config at path. A missing file is not an error:
// the defaults reproduce the original wrapper invocation. TESTRUN_COMMAND
// overrides the command either way.
func LoadConfig(path string) (Config, error) {
	config := Config{
		Project:   defaultProject,
		Command:   defaultCommand,
		SourceDir: defaultSourceDir,
		TestDir:   defaultTestDir,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&config)
			return config, nil
		}
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Project != "" {
		config.Project = fc.Project
	}
	if fc.Command != "" {
		config.Command = fc.Command
	}
	if fc.SourceDir != "" {
		if err := checkDir(fc.SourceDir); err != nil {
			return Config{}, err
		}
		config.SourceDir = fc.SourceDir
	}
	if fc.TestDir != "" {
		if err := checkDir(fc.TestDir); err != nil {
			return Config{}, err
		}
		config.TestDir = fc.TestDir
	}
	if fc.Timeout != "" {
		parsed, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout %q: %w", fc.Timeout, err)
		}
		config.Timeout = parsed
	}
	config.ExtraArgs = fc.ExtraArgs

	applyEnvOverrides(&config)
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if command := os.Getenv("TESTRUN_COMMAND"); command != "" {
		config.Command = command
	}
}

// checkDir rejects explicitly configured directories that do not exist.
// The built-in defaults are passed through unchecked so the test tool's own
// error surfaces instead.
func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
