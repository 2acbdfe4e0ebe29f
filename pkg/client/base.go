package client

import "github.com/osprey-dcs/dp-sdk-go/pkg/rpc"

// serviceClient is the shared base of the per-service typed clients. It holds
// the communication channel for the client's backend service.
type serviceClient struct {
	channel *rpc.Channel
}

// Channel exposes the underlying channel for advanced usage.
func (s *serviceClient) Channel() *rpc.Channel {
	return s.channel
}
