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

// NewPackagesCommand creates the packages command group.
func NewPackagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "packages",
		Aliases: []string{"package", "pkg"},
		Short:   "Manage packages",
	}

	cmd.AddCommand(newPackagesListCommand())
	cmd.AddCommand(newPackagesGetCommand())
	cmd.AddCommand(newPackagesDeleteCommand())
	cmd.AddCommand(newPackagesExportCommand())
	cmd.AddCommand(newPackagesImportCommand())
	cmd.AddCommand(newPackagesResourcesCommand())

	return cmd
}

func newPackagesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := oic.NewQueryParams()
			params.Limit = limit

			result, err := client.Packages().List(context.Background(), params)
			if err != nil {
				return err
			}

			return outputPackages(result.Items)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")

	return cmd
}

func outputPackages(packages []oic.Package) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(packages)
	case OutputFormatYAML:
		return outputYAML(packages)
	default:
		if len(packages) == 0 {
			_, _ = os.Stdout.WriteString("No packages found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Type", "Updated")

		for _, pkg := range packages {
			_ = table.Append(pkg.Name, pkg.Type, pkg.LastUpdated)
		}

		_ = table.Render()

		return nil
	}
}

func newPackagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PACKAGE_NAME",
		Short: "Get package details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			pkg, err := client.Packages().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(pkg)
			case OutputFormatYAML:
				return outputYAML(pkg)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("Name", pkg.Name)
				_ = table.Append("Type", pkg.Type)
				_ = table.Append("Updated", pkg.LastUpdated)
				_ = table.Render()

				return nil
			}
		},
	}
}

func newPackagesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PACKAGE_NAME",
		Short: "Delete a package",
		Long:  "Delete a package and the integrations it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Packages().Delete(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Package %s deleted\n", args[0])

			return nil
		},
	}
}

func newPackagesExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export PACKAGE_NAME",
		Short: "Export a package archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			archive, err := client.Packages().Export(context.Background(), args[0])
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = args[0] + ".par"
			}

			err = writeArchiveFile(outFile, archive)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %s to %s (%d bytes)\n", args[0], outFile, len(archive))

			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "output file (default <name>.par)")

	return cmd
}

func newPackagesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import ARCHIVE_FILE",
		Short: "Import a package archive",
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

			_, err = client.Packages().Import(context.Background(), filepath.Base(args[0]), archive)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s\n", args[0])

			return nil
		},
	}
}

func newPackagesResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources PACKAGE_NAME",
		Short: "List the artifacts in a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resources, err := client.Packages().Resources(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(resources)
			case OutputFormatYAML:
				return outputYAML(resources)
			default:
				if len(resources) == 0 {
					_, _ = os.Stdout.WriteString("No resources found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Code", "Type")

				for _, resource := range resources {
					_ = table.Append(stringField(resource, "code"), stringField(resource, "type"))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

// stringField pulls a string out of an opaque record, tolerating missing or
// non-string values.
func stringField(record map[string]interface{}, key string) string {
	value, ok := record[key].(string)
	if !ok {
		return ""
	}

	return value
}
