/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"dirpx.dev/acp/apis"
)

// Environment variables overriding file and default values.
const (
	EnvAddress     = "ACP_ADDRESS"
	EnvCallTimeout = "ACP_CALL_TIMEOUT"
	EnvConcurrency = "ACP_CONCURRENCY"
	EnvLogLevel    = "ACP_LOG_LEVEL"
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("acp(config): invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML file on top of DefaultConfig, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (apis.Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return apis.Config{}, fmt.Errorf("acp(config): read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return apis.Config{}, fmt.Errorf("acp(config): parse %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return apis.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the ACP_* environment variables that are set.
func ApplyEnv(cfg *apis.Config) error {
	if v, ok := os.LookupEnv(EnvAddress); ok {
		cfg.Address = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvCallTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("acp(config): %s: %w", EnvCallTimeout, err)
		}
		cfg.CallTimeout = d
	}
	if v, ok := os.LookupEnv(EnvConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("acp(config): %s: %w", EnvConcurrency, err)
		}
		cfg.Concurrency = n
	}
	return nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg apis.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
