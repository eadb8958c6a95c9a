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

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/acp/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.Address != config.DefaultAddress {
		t.Fatalf("Address = %q, want %q", got.Address, config.DefaultAddress)
	}
	if got.Concurrency != config.DefaultConcurrency {
		t.Fatalf("Concurrency = %d, want %d", got.Concurrency, config.DefaultConcurrency)
	}
	if got.LogLevel != config.DefaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", got.LogLevel, config.DefaultLogLevel)
	}
	if err := config.Validate(got); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithAddress("a:1"),
		config.WithAddress("b:2"),
		config.WithConcurrency(2),
		config.WithConcurrency(8),
		config.WithCallTimeout(time.Second),
		config.WithCallTimeout(2*time.Second),
		config.WithCheckVersions(false),
	)

	if c.Address != "b:2" {
		t.Errorf("Address = %q, want b:2 (last option wins)", c.Address)
	}
	if c.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8 (last option wins)", c.Concurrency)
	}
	if c.CallTimeout != 2*time.Second {
		t.Errorf("CallTimeout = %v, want 2s (last option wins)", c.CallTimeout)
	}
	if c.CheckVersions {
		t.Errorf("CheckVersions = true, want false")
	}
}

func TestOptions_NegativeResetsToDefault(t *testing.T) {
	c := config.NewConfig(
		config.WithConcurrency(-1),
		config.WithDialTimeout(-time.Second),
		config.WithCallTimeout(-time.Second),
	)
	if c.Concurrency != config.DefaultConcurrency {
		t.Fatalf("Concurrency = %d, want default", c.Concurrency)
	}
	if c.DialTimeout != config.DefaultDialTimeout || c.CallTimeout != config.DefaultCallTimeout {
		t.Fatalf("timeouts = %v/%v, want defaults", c.DialTimeout, c.CallTimeout)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acp.yaml")
	data := []byte("address: acp.example.com:50555\ncall_timeout: 5s\nconcurrency: 2\nlog_level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "acp.example.com:50555", cfg.Address)
	require.Equal(t, 5*time.Second, cfg.CallTimeout)
	require.Equal(t, 2, cfg.Concurrency)
	require.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults.
	require.Equal(t, config.DefaultDialTimeout, cfg.DialTimeout)

	t.Setenv(config.EnvAddress, "other:1234")
	t.Setenv(config.EnvConcurrency, "16")
	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "other:1234", cfg.Address)
	require.Equal(t, 16, cfg.Concurrency)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv(config.EnvLogLevel, "chatty")
	_, err = config.Load("")
	require.True(t, errors.Is(err, config.ErrInvalidConfig), "got %v", err)

	t.Setenv(config.EnvLogLevel, "info")
	t.Setenv(config.EnvCallTimeout, "soon")
	_, err = config.Load("")
	require.Error(t, err)
}

func TestValidate_Address(t *testing.T) {
	err := config.Validate(config.NewConfig(config.WithAddress("")))
	require.True(t, errors.Is(err, config.ErrInvalidConfig), "got %v", err)
}

func TestNewLogger(t *testing.T) {
	l, err := config.NewLogger(config.NewConfig(config.WithLogLevel("warn")))
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = config.NewLogger(config.NewConfig(config.WithLogLevel("loud")))
	require.Error(t, err)
}
