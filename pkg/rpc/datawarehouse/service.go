package datawarehouse

import (
	"context"

	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"
)

// DataWarehouseServiceServer is the server API for grpc.datawarehouse.DataWarehouseService
type DataWarehouseServiceServer interface {
	GetWarehouseData(ctx context.Context, req domain.WarehouseRequest) (*domain.WarehouseData, error)
}

var DataWarehouseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DataWarehouseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: GetWarehouseDataMethodName,
			Handler:    getWarehouseDataHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: FileName,
}

func RegisterDataWarehouseServiceServer(s grpc.ServiceRegistrar, srv DataWarehouseServiceServer) {
	s.RegisterService(&DataWarehouseService_ServiceDesc, srv)
}

func getWarehouseDataHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := NewWarehouseRequestMessage()
	if err := dec(in); err != nil {
		return nil, err
	}

	handler := func(ctx context.Context, req any) (any, error) {
		msg := req.(*dynamicpb.Message)
		data, err := srv.(DataWarehouseServiceServer).GetWarehouseData(ctx, DecodeWarehouseRequest(msg))
		if err != nil {
			return nil, err
		}
		return EncodeWarehouseData(data), nil
	}

	if interceptor == nil {
		return handler(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetWarehouseDataFullMethod,
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls DataWarehouseService over any grpc connection
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetWarehouseData(ctx context.Context, req domain.WarehouseRequest, opts ...grpc.CallOption) (*domain.WarehouseData, error) {
	out := NewWarehouseDataMessage()
	if err := c.cc.Invoke(ctx, GetWarehouseDataFullMethod, EncodeWarehouseRequest(req), out, opts...); err != nil {
		return nil, err
	}
	return DecodeWarehouseData(out), nil
}
