package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// NewLookupsCommand creates the lookups command group.
func NewLookupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lookups",
		Aliases: []string{"lookup"},
		Short:   "Manage lookup tables",
	}

	cmd.AddCommand(newLookupsListCommand())
	cmd.AddCommand(newLookupsGetCommand())
	cmd.AddCommand(newLookupsGetDataCommand())
	cmd.AddCommand(newLookupsDeleteCommand())
	cmd.AddCommand(newLookupsExportCommand())
	cmd.AddCommand(newLookupsImportCommand())

	return cmd
}

func newLookupsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := oic.NewQueryParams()
			params.Limit = limit

			result, err := client.Lookups().List(context.Background(), params)
			if err != nil {
				return err
			}

			return outputLookups(result.Items)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")

	return cmd
}

func outputLookups(lookups []oic.Lookup) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(lookups)
	case OutputFormatYAML:
		return outputYAML(lookups)
	default:
		if len(lookups) == 0 {
			_, _ = os.Stdout.WriteString("No lookups found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Status", "Updated")

		for _, lookup := range lookups {
			_ = table.Append(lookup.Name, lookup.Status, lookup.LastUpdated)
		}

		_ = table.Render()

		return nil
	}
}

func newLookupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOOKUP_NAME",
		Short: "Get lookup details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			lookup, err := client.Lookups().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(lookup)
			case OutputFormatYAML:
				return outputYAML(lookup)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("Name", lookup.Name)
				_ = table.Append("Status", lookup.Status)
				_ = table.Append("Updated", lookup.LastUpdated)
				_ = table.Render()

				return nil
			}
		},
	}
}

func newLookupsGetDataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-data LOOKUP_NAME",
		Short: "Get lookup row data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := client.Lookups().GetData(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return outputYAML(data)
			default:
				// Row data has no fixed columns, so it always renders as JSON.
				return outputJSON(data)
			}
		},
	}
}

func newLookupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete LOOKUP_NAME",
		Short: "Delete a lookup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Lookups().Delete(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Lookup %s deleted\n", args[0])

			return nil
		},
	}
}

func newLookupsExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export LOOKUP_NAME",
		Short: "Export a lookup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			archive, err := client.Lookups().Export(context.Background(), args[0])
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = args[0] + ".csv"
			}

			err = writeArchiveFile(outFile, archive)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %s to %s (%d bytes)\n", args[0], outFile, len(archive))

			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "output file (default <name>.csv)")

	return cmd
}

func newLookupsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import ARCHIVE_FILE",
		Short: "Import a lookup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := readArchiveFile(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = client.Lookups().Import(context.Background(), filepath.Base(args[0]), archive)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s\n", args[0])

			return nil
		},
	}
}
