// Package dpbuf provides an in-process Data Platform ingestion server backed
// by bufconn, for exercising the client stack without a network.
package dpbuf

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/osprey-dcs/dp-sdk-go/pkg/rpc"
)

const bufSize = 1024 * 1024

// RespondFunc produces the response for one registerProvider call. Returning
// an error surfaces a gRPC status to the client.
type RespondFunc func(request *dynamicpb.Message) (*dynamicpb.Message, error)

// IngestionService defines the single method served in-memory.
type IngestionService interface {
	RegisterProvider(*dynamicpb.Message) (*dynamicpb.Message, error)
}

// ingestionServer answers registerProvider with a scripted respond function.
type ingestionServer struct {
	respond     RespondFunc
	requestDesc protoreflect.MessageDescriptor
}

func (s *ingestionServer) RegisterProvider(request *dynamicpb.Message) (*dynamicpb.Message, error) {
	return s.respond(request)
}

func _Ingestion_RegisterProvider_Handler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	server := srv.(*ingestionServer)
	in := dynamicpb.NewMessage(server.requestDesc)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return server.RegisterProvider(in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/dp.service.ingestion.DpIngestionService/registerProvider",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return server.RegisterProvider(req.(*dynamicpb.Message))
	}
	return interceptor(ctx, in, info, handler)
}

// ingestionServiceDesc describes the in-memory ingestion service.
var ingestionServiceDesc = grpc.ServiceDesc{
	ServiceName: "dp.service.ingestion.DpIngestionService",
	HandlerType: (*IngestionService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "registerProvider", Handler: _Ingestion_RegisterProvider_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ingestion.proto",
}

// StartServer spins up a bufconn-backed ingestion server that answers
// registerProvider with the given respond function.
func StartServer(respond RespondFunc) (*grpc.Server, *bufconn.Listener, error) {
	files, err := rpc.Schema()
	if err != nil {
		return nil, nil, err
	}
	requestDesc, err := rpc.FindMessage(files, "dp.service.ingestion.RegisterProviderRequest")
	if err != nil {
		return nil, nil, err
	}

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	srv.RegisterService(&ingestionServiceDesc, &ingestionServer{
		respond:     respond,
		requestDesc: requestDesc,
	})
	go func() { _ = srv.Serve(lis) }()
	return srv, lis, nil
}

// Dial connects to the provided bufconn listener using the standard gRPC
// client stack.
func Dial(ctx context.Context, lis *bufconn.Listener, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	dialer := func(context.Context, string) (net.Conn, error) { return lis.Dial() }
	// Use insecure credentials because bufconn does not provide TLS.
	// Use NewClient with a passthrough target so the custom dialer is honored.
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(dialer),
	}
	base = append(base, opts...)
	return grpc.NewClient("passthrough://bufnet", base...)
}

// Channel wraps a bufconn connection into an rpc.Channel.
func Channel(ctx context.Context, lis *bufconn.Listener) (*rpc.Channel, error) {
	conn, err := Dial(ctx, lis)
	if err != nil {
		return nil, err
	}
	return rpc.Wrap(conn)
}

func responseDesc() (protoreflect.MessageDescriptor, error) {
	files, err := rpc.Schema()
	if err != nil {
		return nil, err
	}
	return rpc.FindMessage(files, "dp.service.ingestion.RegisterProviderResponse")
}

// RegistrationResponse builds a success response carrying a
// registrationResult payload.
func RegistrationResponse(providerID, providerName string, isNewProvider bool) (*dynamicpb.Message, error) {
	desc, err := responseDesc()
	if err != nil {
		return nil, err
	}
	response := dynamicpb.NewMessage(desc)
	resultField := desc.Fields().ByName("registrationResult")
	result := response.Mutable(resultField).Message()
	resultFields := resultField.Message().Fields()
	result.Set(resultFields.ByName("providerId"), protoreflect.ValueOfString(providerID))
	result.Set(resultFields.ByName("providerName"), protoreflect.ValueOfString(providerName))
	result.Set(resultFields.ByName("isNewProvider"), protoreflect.ValueOfBool(isNewProvider))
	return response, nil
}

// ExceptionalResponse builds a response carrying an exceptionalResult payload
// with the given message.
func ExceptionalResponse(message string) (*dynamicpb.Message, error) {
	desc, err := responseDesc()
	if err != nil {
		return nil, err
	}
	response := dynamicpb.NewMessage(desc)
	resultField := desc.Fields().ByName("exceptionalResult")
	payload := response.Mutable(resultField).Message()
	payload.Set(resultField.Message().Fields().ByName("message"), protoreflect.ValueOfString(message))
	return response, nil
}

// EmptyResponse builds a response with neither result payload set.
func EmptyResponse() (*dynamicpb.Message, error) {
	desc, err := responseDesc()
	if err != nil {
		return nil, err
	}
	return dynamicpb.NewMessage(desc), nil
}
