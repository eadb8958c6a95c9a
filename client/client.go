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

// Package client connects to an ACP server and exposes its models.
//
//	c, err := client.Connect(ctx, config.NewConfig(config.WithAddress("localhost:50555")))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//	model, err := c.CreateModel(ctx, "plate")
package client

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/config"
	"dirpx.dev/acp/layup"
	"dirpx.dev/acp/transport"
	"dirpx.dev/acp/tree"
)

// Option configures Connect.
type Option func(*options)

type options struct {
	log       *zap.Logger
	transport []transport.Option
	server    []tree.ServerOption
}

// WithLogger sets the logger of the client and its connection. Without it
// a logger is built from the configured level.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithTransport appends options for the gRPC connection.
func WithTransport(opts ...transport.Option) Option {
	return func(o *options) { o.transport = append(o.transport, opts...) }
}

// WithServerOptions appends options for the tree server.
func WithServerOptions(opts ...tree.ServerOption) Option {
	return func(o *options) { o.server = append(o.server, opts...) }
}

// Client is a connection to one server.
type Client struct {
	conn   *grpc.ClientConn
	server *tree.Server
	info   transport.ServerInfo
	log    *zap.Logger
}

// Connect validates cfg, dials the server and waits up to cfg.DialTimeout
// for it to answer GetServerInfo.
func Connect(ctx context.Context, cfg apis.Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if o.log == nil {
		log, err := config.NewLogger(cfg)
		if err != nil {
			return nil, err
		}
		o.log = log
	}

	conn, err := transport.Dial(cfg, append([]transport.Option{transport.WithLogger(o.log)}, o.transport...)...)
	if err != nil {
		return nil, err
	}

	wctx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	info, err := transport.GetServerInfo(wctx, conn, grpc.WaitForReady(true))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("acp(client): connect %s: %w", cfg.Address, err)
	}

	sopts := []tree.ServerOption{
		tree.FromConfig(cfg),
		tree.WithVersion(info.Version),
		tree.WithLogger(o.log),
	}
	c := &Client{
		conn:   conn,
		server: tree.NewServer(transport.NewFactory(conn), append(sopts, o.server...)...),
		info:   info,
		log:    o.log,
	}
	o.log.Info("connected",
		zap.String("address", cfg.Address),
		zap.String("server", info.ServerName),
		zap.String("version", info.Version),
	)
	return c, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// ServerVersion returns the version reported by the server.
func (c *Client) ServerVersion() string { return c.info.Version }

// ServerName returns the name reported by the server.
func (c *Client) ServerName() string { return c.info.ServerName }

// Server returns the tree server bound to the connection.
func (c *Client) Server() *tree.Server { return c.server }

// Models returns the models loaded on the server.
func (c *Client) Models() (layup.Collection[*layup.Model], error) {
	return layup.Models(c.server)
}

// CreateModel creates an empty model. An empty name selects the default.
func (c *Client) CreateModel(ctx context.Context, name string, init ...func(*layup.Model) error) (*layup.Model, error) {
	models, err := c.Models()
	if err != nil {
		return nil, err
	}
	return models.Create(ctx, name, init...)
}

// Get returns the object at the resource path rp.
func (c *Client) Get(ctx context.Context, rp string) (*tree.Object, error) {
	return c.server.Get(ctx, rp)
}

// Print writes the object tree below root to w.
func (c *Client) Print(ctx context.Context, w io.Writer, root *tree.Object) error {
	return tree.Print(ctx, w, root)
}
