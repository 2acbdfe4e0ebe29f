// Package client exposes the typed Data Platform API clients and the
// composition root that wires configuration, channels, and per-service
// clients together.
//
// # Construction
//
// New accepts explicit channels, explicit configuration, a configuration
// file, or nothing at all:
//
//	c, err := client.New()                                  // discovery + defaults
//	c, err := client.New(client.WithConfigFile("mldp-config.yaml"))
//	c, err := client.New(client.WithConfig(cfg))
//	c, err := client.New(client.WithIngestionChannel(ch))   // bring your own channel
//
// Ingestion is mandatory: construction fails with ErrMissingConfiguration
// when neither a channel nor a configuration is available for it. Query and
// annotation clients are optional and left nil when unresolvable.
//
// # Calling the API
//
// Every RPC wrapper follows the same shape: build a typed request from a
// params struct, invoke the RPC, classify the response, return an envelope.
//
//	result := c.Ingestion.RegisterProvider(ctx, client.RegisterProviderRequestParams{
//		Name:    "bpm-archiver",
//		TagList: []string{"bpm", "storage-ring"},
//	})
//	if result.Status.IsError {
//		log.Printf("registerProvider: %s", result.Status.Message)
//		return
//	}
//
// Domain rejections, malformed responses, and transport failures are all
// reported through ResultStatus; per-call failures never surface as Go
// errors or panics. Configuration problems, by contrast, fail construction
// hard: the client refuses to start in an inconsistent state.
//
// # Concurrency
//
// Clients hold no mutable state of their own. Concurrent calls are safe and
// independent; each one is a single blocking invocation on the caller's
// goroutine, bounded only by the caller's context.
package client
