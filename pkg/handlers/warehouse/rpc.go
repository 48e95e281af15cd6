package warehouse

import (
	"context"
	"errors"

	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/rpc/datawarehouse"
	"github.com/de-tools/warehouse-atlas/pkg/services/warehouse"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ datawarehouse.DataWarehouseServiceServer = (*RPCServer)(nil)

// RPCServer serves grpc.datawarehouse.DataWarehouseService on top of the lookup service
type RPCServer struct {
	lookup warehouse.LookupService
}

func NewRPCServer(lookup warehouse.LookupService) *RPCServer {
	return &RPCServer{
		lookup: lookup,
	}
}

func (s *RPCServer) GetWarehouseData(ctx context.Context, req domain.WarehouseRequest) (*domain.WarehouseData, error) {
	data, err := s.lookup.GetWarehouseData(ctx, req)
	if err != nil {
		st := Status(err)
		if st.Code() == codes.Internal {
			zerolog.Ctx(ctx).Error().Err(err).Str("warehouse_id", req.WarehouseID).Msg("failed to get warehouse data")
		}
		return nil, st.Err()
	}
	return data, nil
}

// Status maps lookup errors to gRPC statuses. Internal failures keep their cause out of the message.
func Status(err error) *status.Status {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	default:
		return status.New(codes.Internal, "failed to get warehouse data")
	}
}
