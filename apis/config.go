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

package apis

import "time"

// Config carries the connection and client knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Address is the host:port of the server.
	Address string `yaml:"address" validate:"required,hostname_port"`

	// DialTimeout bounds the initial server handshake.
	DialTimeout time.Duration `yaml:"dial_timeout" validate:"gte=0"`

	// CallTimeout bounds each unary call. Zero disables the per-call deadline.
	CallTimeout time.Duration `yaml:"call_timeout" validate:"gte=0"`

	// MaxMessageSize is the maximum size in bytes of received messages.
	MaxMessageSize int `yaml:"max_message_size" validate:"gte=0"`

	// Concurrency limits parallel calls issued by one operation
	// (for example listing all child collections of an object).
	Concurrency int `yaml:"concurrency" validate:"gte=1,lte=64"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// CheckVersions enables server version gating of kinds and properties.
	CheckVersions bool `yaml:"check_versions"`
}
