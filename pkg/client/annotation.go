package client

import "github.com/osprey-dcs/dp-sdk-go/pkg/rpc"

// AnnotationClient is the typed client for the Data Platform annotation
// service. Annotation RPC wrappers follow the same envelope contract as
// IngestionClient and are added as the service surface stabilizes.
type AnnotationClient struct {
	serviceClient
}

// NewAnnotationClient builds an annotation client on the given channel.
func NewAnnotationClient(channel *rpc.Channel) *AnnotationClient {
	return &AnnotationClient{serviceClient{channel: channel}}
}
