package rpc

import (
	"context"
	"fmt"

	"github.com/bufbuild/protocompile/linker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Channel wraps a gRPC client connection together with the compiled Data
// Platform descriptors used to resolve methods at call time.
type Channel struct {
	conn  *grpc.ClientConn
	files linker.Files
}

// NewChannel opens a channel to the given target. Transport security is
// supplied by the caller (see config.ServiceEndpoint.TransportCredentials).
// The connection is lazy: gRPC establishes the transport in the background
// and on first use, so NewChannel does not verify reachability.
func NewChannel(target string, creds credentials.TransportCredentials, opts ...grpc.DialOption) (*Channel, error) {
	files, err := Schema()
	if err != nil {
		return nil, err
	}

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("create channel for %s: %w", target, err)
	}
	conn.Connect()

	return &Channel{
		conn:  conn,
		files: files,
	}, nil
}

// Wrap builds a Channel over an already-dialed connection, for callers that
// need a custom dialer (in-process tests, tunnels). The Channel takes
// ownership of conn.
func Wrap(conn *grpc.ClientConn) (*Channel, error) {
	files, err := Schema()
	if err != nil {
		return nil, err
	}
	return &Channel{
		conn:  conn,
		files: files,
	}, nil
}

// Invoke performs a unary call for the named method. The method is resolved
// via the embedded descriptors; the fully-qualified path is built as
// "/<package>.<Service>/<method>". Invoke blocks until the server responds,
// the transport fails, or ctx is done. No retries are attempted here.
func (c *Channel) Invoke(ctx context.Context, method string, req proto.Message) (proto.Message, error) {
	fd, methodDesc, err := FindMethod(c.files, method)
	if err != nil {
		return nil, err
	}

	out := dynamicpb.NewMessage(methodDesc.Output())
	fullMethod := "/" + string(fd.Package()) + "." + string(methodDesc.Parent().Name()) + "/" + method
	if err := c.conn.Invoke(ctx, fullMethod, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Target returns the connection's target string.
func (c *Channel) Target() string {
	if c == nil || c.conn == nil {
		return ""
	}
	return c.conn.Target()
}

// Close shuts down the underlying gRPC connection.
// It is safe to call on a nil receiver or when the connection is nil.
func (c *Channel) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
