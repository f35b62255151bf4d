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

// NewLibrariesCommand creates the libraries command group.
func NewLibrariesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "libraries",
		Aliases: []string{"library", "lib"},
		Short:   "Manage JavaScript libraries",
	}

	cmd.AddCommand(newLibrariesListCommand())
	cmd.AddCommand(newLibrariesGetCommand())
	cmd.AddCommand(newLibrariesDeleteCommand())
	cmd.AddCommand(newLibrariesExportCommand())
	cmd.AddCommand(newLibrariesImportCommand())

	return cmd
}

func newLibrariesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List libraries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := oic.NewQueryParams()
			params.Limit = limit

			result, err := client.Libraries().List(context.Background(), params)
			if err != nil {
				return err
			}

			return outputLibraries(result.Items)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")

	return cmd
}

func outputLibraries(libraries []oic.Library) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(libraries)
	case OutputFormatYAML:
		return outputYAML(libraries)
	default:
		if len(libraries) == 0 {
			_, _ = os.Stdout.WriteString("No libraries found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Version", "Status", "Updated")

		for _, library := range libraries {
			_ = table.Append(library.ID, library.Name, library.Version, library.Status, library.LastUpdated)
		}

		_ = table.Render()

		return nil
	}
}

func newLibrariesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LIBRARY_ID",
		Short: "Get library details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			library, err := client.Libraries().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(library)
			case OutputFormatYAML:
				return outputYAML(library)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", library.ID)
				_ = table.Append("Name", library.Name)
				_ = table.Append("Version", library.Version)
				_ = table.Append("Status", library.Status)
				_ = table.Append("Updated", library.LastUpdated)
				_ = table.Render()

				return nil
			}
		},
	}
}

func newLibrariesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete LIBRARY_ID",
		Short: "Delete a library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Libraries().Delete(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Library %s deleted\n", args[0])

			return nil
		},
	}
}

func newLibrariesExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export LIBRARY_ID",
		Short: "Export a library archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			archive, err := client.Libraries().Export(context.Background(), args[0])
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = args[0] + ".zip"
			}

			err = writeArchiveFile(outFile, archive)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %s to %s (%d bytes)\n", args[0], outFile, len(archive))

			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "output file (default <id>.zip)")

	return cmd
}

func newLibrariesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import ARCHIVE_FILE",
		Short: "Import a library archive",
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

			_, err = client.Libraries().Import(context.Background(), filepath.Base(args[0]), archive)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s\n", args[0])

			return nil
		},
	}
}
