package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/warehouse-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/warehouse-atlas/pkg/services/source"
	"github.com/de-tools/warehouse-atlas/pkg/store/catalog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry source.Registry
	loader   *catalog.Loader
	dial     commands.Dialer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry source.Registry
	Loader   *catalog.Loader
	Dial     commands.Dialer
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		loader:   opts.Loader,
		dial:     opts.Dial,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context, args ...string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "warehousectl",
		Short:         "Warehouse data lookup tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewGetCmd(cli.dial))
	cmd.AddCommand(commands.NewProfilesCmd())
	cmd.AddCommand(commands.NewSeedCmd(cli.loader))
	cmd.AddCommand(commands.NewSourcesCmd(cli.registry))

	return cmd
}
