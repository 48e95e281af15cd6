package commands

import (
	"fmt"

	"github.com/de-tools/warehouse-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	file string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List data-source profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.file, "file", config.DefaultPath(), "Path to the profiles file")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	registry, err := config.NewRegistry(pc.file)
	if err != nil {
		return err
	}

	names, err := registry.GetProfiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", pc.file)
		return nil
	}

	for _, name := range names {
		profile, err := registry.GetProfile(ctx, name)
		if err != nil {
			return err
		}
		driver := profile.Driver
		if driver == "" {
			driver = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", profile.Name, driver)
	}
	return nil
}
