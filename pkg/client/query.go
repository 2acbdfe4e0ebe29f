package client

import "github.com/osprey-dcs/dp-sdk-go/pkg/rpc"

// QueryClient is the typed client for the Data Platform query service. Query
// RPC wrappers follow the same envelope contract as IngestionClient and are
// added as the service surface stabilizes.
type QueryClient struct {
	serviceClient
}

// NewQueryClient builds a query client on the given channel.
func NewQueryClient(channel *rpc.Channel) *QueryClient {
	return &QueryClient{serviceClient{channel: channel}}
}
