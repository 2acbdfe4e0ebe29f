package client

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/osprey-dcs/dp-sdk-go/pkg/rpc"
)

// Names consumed from the ingestion wire schema.
const (
	registerProviderMethod      = "registerProvider"
	registerProviderRequestName = protoreflect.FullName("dp.service.ingestion.RegisterProviderRequest")
	attributeMessageName        = protoreflect.FullName("dp.service.common.Attribute")
)

// RegisterProviderRequestParams carries the caller's parameters for a
// registerProvider call. Name is required; every other field is optional and,
// when empty, is omitted from the wire request rather than sent.
type RegisterProviderRequestParams struct {
	// Name is the data provider name.
	Name string
	// Description is an optional free-text provider description.
	Description string
	// TagList holds keywords describing the provider. Order and duplicates
	// are preserved on the wire.
	TagList []string
	// AttributeMap holds key/value attributes describing the provider.
	AttributeMap map[string]string
}

// IngestionClient is the typed client for the Data Platform ingestion
// service.
type IngestionClient struct {
	serviceClient
}

// NewIngestionClient builds an ingestion client on the given channel.
func NewIngestionClient(channel *rpc.Channel) *IngestionClient {
	return &IngestionClient{serviceClient{channel: channel}}
}

// RegisterProvider registers a data provider with the ingestion service. The
// call blocks until the server responds, the transport fails, or ctx is done.
//
// Every failure mode is reported through the returned envelope: domain
// rejections from the service, malformed responses, transport failures, and
// anything else that goes wrong during the call. The method never returns a
// Go error and nothing is retried.
func (c *IngestionClient) RegisterProvider(ctx context.Context, params RegisterProviderRequestParams) *RegisterProviderApiResult {
	request, err := buildRegisterProviderRequest(params)
	if err != nil {
		return errorResult("Unexpected error: " + err.Error())
	}
	return c.sendRegisterProvider(ctx, request)
}

// buildRegisterProviderRequest is a pure translation from caller params to
// the wire request. Empty optional fields are left at their proto defaults.
func buildRegisterProviderRequest(params RegisterProviderRequestParams) (proto.Message, error) {
	if params.Name == "" {
		return nil, errors.New("provider name is required")
	}

	files, err := rpc.Schema()
	if err != nil {
		return nil, err
	}
	requestDesc, err := rpc.FindMessage(files, registerProviderRequestName)
	if err != nil {
		return nil, err
	}
	attributeDesc, err := rpc.FindMessage(files, attributeMessageName)
	if err != nil {
		return nil, err
	}

	request := dynamicpb.NewMessage(requestDesc)
	fields := requestDesc.Fields()

	request.Set(fields.ByName("providerName"), protoreflect.ValueOfString(params.Name))

	if params.Description != "" {
		request.Set(fields.ByName("description"), protoreflect.ValueOfString(params.Description))
	}

	if len(params.TagList) > 0 {
		tags := request.Mutable(fields.ByName("tags")).List()
		for _, tag := range params.TagList {
			tags.Append(protoreflect.ValueOfString(tag))
		}
	}

	if len(params.AttributeMap) > 0 {
		attributes := request.Mutable(fields.ByName("attributes")).List()
		attributeFields := attributeDesc.Fields()
		for name, value := range params.AttributeMap {
			attribute := dynamicpb.NewMessage(attributeDesc)
			attribute.Set(attributeFields.ByName("name"), protoreflect.ValueOfString(name))
			attribute.Set(attributeFields.ByName("value"), protoreflect.ValueOfString(value))
			attributes.Append(protoreflect.ValueOfMessage(attribute))
		}
	}

	return request, nil
}

// sendRegisterProvider invokes the RPC and folds every outcome into the
// envelope.
func (c *IngestionClient) sendRegisterProvider(ctx context.Context, request proto.Message) *RegisterProviderApiResult {
	response, err := c.channel.Invoke(ctx, registerProviderMethod, request)
	if err != nil {
		return errorResult(invokeErrorMessage(err))
	}
	return classifyRegisterProviderResponse(response).apiResult()
}

// invokeErrorMessage folds an invocation failure into an envelope message:
// gRPC status errors keep the transport's detail string, anything else is
// reported as unexpected.
func invokeErrorMessage(err error) string {
	if st, ok := status.FromError(err); ok {
		return "gRPC error: " + st.Message()
	}
	return "Unexpected error: " + err.Error()
}

// classifyRegisterProviderResponse inspects the response's result payload and
// produces exactly one outcome. An exceptional result wins over a
// registration result regardless of what else is populated; a response
// carrying neither is malformed.
func classifyRegisterProviderResponse(response proto.Message) callOutcome {
	msg := response.ProtoReflect()
	fields := msg.Descriptor().Fields()

	if fd := fields.ByName("exceptionalResult"); fd != nil && msg.Has(fd) {
		exceptional := msg.Get(fd).Message()
		messageField := exceptional.Descriptor().Fields().ByName("message")
		return businessErrorOutcome(exceptional.Get(messageField).String())
	}

	if fd := fields.ByName("registrationResult"); fd != nil && msg.Has(fd) {
		return successOutcome(response)
	}

	zap.L().Error("registerProvider response carried neither result payload")
	return malformedOutcome()
}
