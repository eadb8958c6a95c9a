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
	"time"

	"dirpx.dev/acp/apis"
)

const (
	// DefaultAddress is the address of a locally launched server.
	DefaultAddress = "localhost:50555"
	// DefaultDialTimeout bounds the initial server handshake.
	DefaultDialTimeout = 30 * time.Second
	// DefaultCallTimeout disables per-call deadlines.
	DefaultCallTimeout = time.Duration(0)
	// DefaultMaxMessageSize allows large meshes to be listed in one reply.
	DefaultMaxMessageSize = 256 << 20
	// DefaultConcurrency limits parallel calls of one operation.
	DefaultConcurrency = 4
	// DefaultLogLevel is the level of the logger built by NewLogger.
	DefaultLogLevel = "info"
	// DefaultCheckVersions enables server version gating.
	DefaultCheckVersions = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure Concurrency is valid.
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Address:        DefaultAddress,
		DialTimeout:    DefaultDialTimeout,
		CallTimeout:    DefaultCallTimeout,
		MaxMessageSize: DefaultMaxMessageSize,
		Concurrency:    DefaultConcurrency,
		LogLevel:       DefaultLogLevel,
		CheckVersions:  DefaultCheckVersions,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithAddress sets the server address.
func WithAddress(addr string) Option {
	return func(c *apis.Config) {
		c.Address = addr
	}
}

// WithDialTimeout sets the DialTimeout option.
// A negative value resets to the default.
func WithDialTimeout(d time.Duration) Option {
	return func(c *apis.Config) {
		if d < 0 {
			c.DialTimeout = DefaultDialTimeout
			return
		}
		c.DialTimeout = d
	}
}

// WithCallTimeout sets the CallTimeout option.
// A negative value resets to the default.
func WithCallTimeout(d time.Duration) Option {
	return func(c *apis.Config) {
		if d < 0 {
			c.CallTimeout = DefaultCallTimeout
			return
		}
		c.CallTimeout = d
	}
}

// WithMaxMessageSize sets the MaxMessageSize option.
func WithMaxMessageSize(n int) Option {
	return func(c *apis.Config) {
		c.MaxMessageSize = n
	}
}

// WithConcurrency sets the Concurrency option.
// A non-positive value resets to the default.
func WithConcurrency(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.Concurrency = DefaultConcurrency
			return
		}
		c.Concurrency = n
	}
}

// WithLogLevel sets the LogLevel option.
func WithLogLevel(level string) Option {
	return func(c *apis.Config) {
		c.LogLevel = level
	}
}

// WithCheckVersions sets the CheckVersions option.
func WithCheckVersions(check bool) Option {
	return func(c *apis.Config) {
		c.CheckVersions = check
	}
}
