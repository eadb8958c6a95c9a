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

// Package transport connects to the server and serves the object services
// of compiled kinds over gRPC with dynamic messages.
package transport

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"dirpx.dev/acp/apis"
)

// Option configures Dial.
type Option func(*options)

type options struct {
	log     *zap.Logger
	metrics *Metrics
	tp      trace.TracerProvider
	dial    []grpc.DialOption
}

// WithLogger logs every call at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetrics records every call in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracerProvider sets the provider of client spans. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tp = tp
		}
	}
}

// WithDialOptions appends raw gRPC dial options, e.g. a context dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dial = append(o.dial, opts...) }
}

// Dial creates a client connection to cfg.Address. The connection is
// established lazily on the first call.
func Dial(cfg apis.Config, opts ...Option) (*grpc.ClientConn, error) {
	o := options{log: zap.NewNop(), tp: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	chain := []grpc.UnaryClientInterceptor{tracingInterceptor(o.tp)}
	if o.metrics != nil {
		chain = append(chain, metricsInterceptor(o.metrics))
	}
	chain = append(chain, loggingInterceptor(o.log))
	if cfg.CallTimeout > 0 {
		chain = append(chain, timeoutInterceptor(cfg.CallTimeout))
	}

	dopts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(chain...),
	}
	if cfg.MaxMessageSize > 0 {
		dopts = append(dopts, grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(cfg.MaxMessageSize),
			grpc.MaxCallSendMsgSize(cfg.MaxMessageSize),
		))
	}
	dopts = append(dopts, o.dial...)

	conn, err := grpc.NewClient("passthrough:///"+cfg.Address, dopts...)
	if err != nil {
		return nil, fmt.Errorf("acp(transport): dial %s: %w", cfg.Address, err)
	}
	return conn, nil
}
