package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// NewIntegrationsCommand creates the integrations command group.
func NewIntegrationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "integrations",
		Aliases: []string{"integration", "int"},
		Short:   "Manage integrations",
		Long:    "List, inspect, and manage the lifecycle of OIC integrations",
	}

	cmd.AddCommand(newIntegrationsListCommand())
	cmd.AddCommand(newIntegrationsGetCommand())
	cmd.AddCommand(newIntegrationsCreateCommand())
	cmd.AddCommand(newIntegrationsUpdateCommand())
	cmd.AddCommand(newIntegrationsDeleteCommand())
	cmd.AddCommand(newIntegrationsActivateCommand())
	cmd.AddCommand(newIntegrationsDeactivateCommand())
	cmd.AddCommand(newIntegrationsExportCommand())
	cmd.AddCommand(newIntegrationsImportCommand())
	cmd.AddCommand(newIntegrationsCloneCommand())

	return cmd
}

// IntegrationsListOptions holds the options for listing integrations.
type IntegrationsListOptions struct {
	All    bool
	Limit  int
	Status string
}

func newIntegrationsListCommand() *cobra.Command {
	var opts IntegrationsListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List integrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrationsListCommand(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&opts.Limit, "limit", constants.DefaultListLimit, "results per page")
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status (ACTIVATED, CONFIGURED, ...)")

	return cmd
}

func runIntegrationsListCommand(opts IntegrationsListOptions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := oic.NewQueryParams()
	params.Limit = opts.Limit
	params.Status = opts.Status

	var integrations []oic.Integration

	if opts.All {
		integrations, err = client.Integrations().ListAll(ctx, params)
		if err != nil {
			return err
		}
	} else {
		result, err := client.Integrations().List(ctx, params)
		if err != nil {
			return err
		}

		integrations = result.Items
	}

	return outputIntegrations(integrations)
}

func outputIntegrations(integrations []oic.Integration) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(integrations)
	case OutputFormatYAML:
		return outputYAML(integrations)
	default:
		return outputIntegrationsTable(integrations)
	}
}

func outputIntegrationsTable(integrations []oic.Integration) error {
	if len(integrations) == 0 {
		_, _ = os.Stdout.WriteString("No integrations found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Code", "Version", "Name", "Status", "Pattern", "Updated")

	for _, integration := range integrations {
		_ = table.Append(integration.Code, integration.Version, integration.Name,
			integration.Status, integration.Pattern, integration.LastUpdated)
	}

	_ = table.Render()

	return nil
}

func newIntegrationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get INTEGRATION_ID",
		Short: "Get integration details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			integration, err := client.Integrations().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			return outputIntegration(integration)
		},
	}
}

func outputIntegration(integration *oic.Integration) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(integration)
	case OutputFormatYAML:
		return outputYAML(integration)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", integration.ID)
		_ = table.Append("Code", integration.Code)
		_ = table.Append("Version", integration.Version)
		_ = table.Append("Name", integration.Name)
		_ = table.Append("Status", integration.Status)
		_ = table.Append("Pattern", integration.Pattern)
		_ = table.Append("Updated", integration.LastUpdated)
		_ = table.Render()

		return nil
	}
}

// readBodyFile parses a JSON payload file used by create and update.
func readBodyFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload file: %w", err)
	}

	var body map[string]interface{}

	err = json.Unmarshal(data, &body)
	if err != nil {
		return nil, fmt.Errorf("parsing payload file: %w", err)
	}

	return body, nil
}

func newIntegrationsCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an integration",
		Long:  "Create an integration from a JSON payload file",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBodyFile(fromFile)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			integration, err := client.Integrations().Create(context.Background(), body)
			if err != nil {
				return err
			}

			return outputIntegration(integration)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "JSON file with the integration payload")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newIntegrationsUpdateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "update INTEGRATION_ID",
		Short: "Update an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBodyFile(fromFile)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			integration, err := client.Integrations().Update(context.Background(), args[0], body)
			if err != nil {
				return err
			}

			return outputIntegration(integration)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "JSON file with the update payload")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newIntegrationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INTEGRATION_ID",
		Short: "Delete an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Integrations().Delete(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Integration %s deleted\n", args[0])

			return nil
		},
	}
}

func newIntegrationsActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate INTEGRATION_ID",
		Short: "Activate an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			integration, err := client.Integrations().Activate(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Integration %s is %s\n", args[0], integration.Status)

			return nil
		},
	}
}

func newIntegrationsDeactivateCommand() *cobra.Command {
	var stopSchedule bool

	cmd := &cobra.Command{
		Use:   "deactivate INTEGRATION_ID",
		Short: "Deactivate an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			integration, err := client.Integrations().Deactivate(context.Background(), args[0], stopSchedule)
			if err != nil {
				return err
			}

			fmt.Printf("Integration %s is %s\n", args[0], integration.Status)

			return nil
		},
	}

	cmd.Flags().BoolVar(&stopSchedule, "stop-schedule", false, "also stop the schedule of a scheduled integration")

	return cmd
}

func newIntegrationsExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export INTEGRATION_ID",
		Short: "Export an integration archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			archive, err := client.Integrations().Export(context.Background(), args[0])
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = args[0] + ".iar"
			}

			err = writeArchiveFile(outFile, archive)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %s to %s (%d bytes)\n", args[0], outFile, len(archive))

			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "output file (default <id>.iar)")

	return cmd
}

func newIntegrationsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import ARCHIVE_FILE",
		Short: "Import an integration archive",
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

			integration, err := client.Integrations().Import(context.Background(), filepath.Base(args[0]), archive)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s\n", args[0])

			if integration.Code != "" {
				return outputIntegration(integration)
			}

			return nil
		},
	}
}

func newIntegrationsCloneCommand() *cobra.Command {
	var (
		name       string
		identifier string
	)

	cmd := &cobra.Command{
		Use:   "clone INTEGRATION_ID",
		Short: "Clone an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			integration, err := client.Integrations().Clone(context.Background(), args[0], name, identifier)
			if err != nil {
				return err
			}

			return outputIntegration(integration)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name for the clone")
	cmd.Flags().StringVar(&identifier, "identifier", "", "identifier for the clone")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("identifier")

	return cmd
}
