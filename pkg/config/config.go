package config

import (
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/osprey-dcs/dp-sdk-go/pkg/rpc"
)

// Built-in endpoint defaults for each Data Platform service family.
const (
	DefaultHost           = "localhost"
	DefaultIngestionPort  = 50051
	DefaultQueryPort      = 50052
	DefaultAnnotationPort = 50053
)

// ServiceEndpoint describes the address and transport security mode of one
// Data Platform service. Endpoints are resolved once by Load (or supplied
// literally by the caller) and never mutated afterwards, only replaced.
type ServiceEndpoint struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	UseTLS bool   `yaml:"use_tls"`
}

// ConnectionString renders the gRPC dial target for this endpoint.
func (e ServiceEndpoint) ConnectionString() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// TransportCredentials returns the transport security for this endpoint:
// platform-default TLS when UseTLS is set, plaintext otherwise. This is the
// only place transport security policy is decided.
func (e ServiceEndpoint) TransportCredentials() credentials.TransportCredentials {
	if e.UseTLS {
		return credentials.NewTLS(nil)
	}
	return insecure.NewCredentials()
}

// NewChannel opens a channel to this endpoint. The connection is lazy; see
// rpc.NewChannel.
func (e ServiceEndpoint) NewChannel(opts ...grpc.DialOption) (*rpc.Channel, error) {
	return rpc.NewChannel(e.ConnectionString(), e.TransportCredentials(), opts...)
}

// Validate checks that the endpoint renders a usable connection string.
func (e ServiceEndpoint) Validate() error {
	if e.Host == "" {
		return errors.New("host must not be empty")
	}
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", e.Port)
	}
	return nil
}

// Config aggregates one endpoint per Data Platform service family.
type Config struct {
	Ingestion  ServiceEndpoint `yaml:"ingestion"`
	Query      ServiceEndpoint `yaml:"query"`
	Annotation ServiceEndpoint `yaml:"annotation"`
}

// Default returns the built-in configuration: every service on localhost, one
// well-known port per family, TLS off.
func Default() *Config {
	return &Config{
		Ingestion:  ServiceEndpoint{Host: DefaultHost, Port: DefaultIngestionPort},
		Query:      ServiceEndpoint{Host: DefaultHost, Port: DefaultQueryPort},
		Annotation: ServiceEndpoint{Host: DefaultHost, Port: DefaultAnnotationPort},
	}
}

// Validate checks every service family's endpoint.
func (c *Config) Validate() error {
	if err := c.Ingestion.Validate(); err != nil {
		return fmt.Errorf("ingestion: %w", err)
	}
	if err := c.Query.Validate(); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if err := c.Annotation.Validate(); err != nil {
		return fmt.Errorf("annotation: %w", err)
	}
	return nil
}

// NewIngestionChannel opens a channel to the ingestion service.
func (c *Config) NewIngestionChannel(opts ...grpc.DialOption) (*rpc.Channel, error) {
	return c.Ingestion.NewChannel(opts...)
}

// NewQueryChannel opens a channel to the query service.
func (c *Config) NewQueryChannel(opts ...grpc.DialOption) (*rpc.Channel, error) {
	return c.Query.NewChannel(opts...)
}

// NewAnnotationChannel opens a channel to the annotation service.
func (c *Config) NewAnnotationChannel(opts ...grpc.DialOption) (*rpc.Channel, error) {
	return c.Annotation.NewChannel(opts...)
}
