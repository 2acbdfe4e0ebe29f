// Package rpc provides the gRPC transport layer for the Data Platform SDK.
//
// The Data Platform wire schema (.proto sources under proto/) is embedded in
// the package and compiled at runtime with protocompile, so no protoc code
// generation step is required. Methods are resolved by name against the
// compiled descriptors and invoked dynamically via dynamicpb.
//
// # Channels
//
// A Channel pairs a gRPC client connection with the compiled descriptors:
//
//	ch, err := rpc.NewChannel("ingest.example.com:443", credentials.NewTLS(nil))
//	if err != nil {
//		return err
//	}
//	defer ch.Close()
//
// Connections are lazy; the transport is established in the background and on
// first use. Callers that need a custom dialer can wrap an existing
// connection with Wrap.
//
// # Invocation
//
// Invoke performs a single unary call and blocks until the server responds or
// the transport fails:
//
//	resp, err := ch.Invoke(ctx, "registerProvider", request)
//
// Timeouts and cancellation belong to the caller's context; the channel
// imposes none of its own and never retries.
//
// # Thread Safety
//
// Channel instances are safe for concurrent use; the underlying
// grpc.ClientConn multiplexes parallel calls.
package rpc
