package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/rpc/datawarehouse"
	"github.com/de-tools/warehouse-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const DefaultAddr = "localhost:50051"

// Dialer opens a client connection to the warehouse service
type Dialer func(addr string) (*grpc.ClientConn, error)

func InsecureDialer(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

type GetCmd struct {
	addr    string
	output  string
	timeout time.Duration
	dial    Dialer
}

func NewGetCmd(dial Dialer) *cobra.Command {
	if dial == nil {
		dial = InsecureDialer
	}
	gc := &GetCmd{dial: dial}
	cmd := &cobra.Command{
		Use:   "get <warehouseID>",
		Short: "Fetch warehouse data from a running server",
		Args:  cobra.ExactArgs(1),
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.addr, "addr", DefaultAddr, "Address of the gRPC server")
	cmd.Flags().StringVarP(&gc.output, "output", "o", export.FormatText, "Output format (text or json)")
	cmd.Flags().DurationVar(&gc.timeout, "timeout", 10*time.Second, "Request timeout")

	return cmd
}

func (gc *GetCmd) run(cmd *cobra.Command, args []string) error {
	reporter, err := export.NewHandler(gc.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), gc.timeout)
	defer cancel()

	conn, err := gc.dial(gc.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", gc.addr, err)
	}
	defer conn.Close()

	data, err := datawarehouse.NewClient(conn).GetWarehouseData(ctx, domain.WarehouseRequest{WarehouseID: args[0]})
	if err != nil {
		return fmt.Errorf("failed to get warehouse %q: %w", args[0], err)
	}

	return reporter.Handle(data)
}
