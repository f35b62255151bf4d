package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// NewConnectionsCommand creates the connections command group.
func NewConnectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connections",
		Aliases: []string{"connection", "conn"},
		Short:   "Manage connections",
		Long:    "List, inspect, and manage OIC connections",
	}

	cmd.AddCommand(newConnectionsListCommand())
	cmd.AddCommand(newConnectionsGetCommand())
	cmd.AddCommand(newConnectionsCreateCommand())
	cmd.AddCommand(newConnectionsUpdateCommand())
	cmd.AddCommand(newConnectionsDeleteCommand())
	cmd.AddCommand(newConnectionsTestCommand())

	return cmd
}

func newConnectionsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := oic.NewQueryParams()
			params.Limit = limit

			result, err := client.Connections().List(context.Background(), params)
			if err != nil {
				return err
			}

			return outputConnections(result.Items)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")

	return cmd
}

func outputConnections(connections []oic.Connection) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(connections)
	case OutputFormatYAML:
		return outputYAML(connections)
	default:
		if len(connections) == 0 {
			_, _ = os.Stdout.WriteString("No connections found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Adapter", "Status", "Updated")

		for _, connection := range connections {
			_ = table.Append(connection.ID, connection.Name, connection.AdapterType,
				connection.Status, connection.LastUpdated)
		}

		_ = table.Render()

		return nil
	}
}

func outputConnection(connection *oic.Connection) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(connection)
	case OutputFormatYAML:
		return outputYAML(connection)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")
		_ = table.Append("ID", connection.ID)
		_ = table.Append("Name", connection.Name)
		_ = table.Append("Adapter", connection.AdapterType)
		_ = table.Append("Status", connection.Status)
		_ = table.Append("Updated", connection.LastUpdated)
		_ = table.Render()

		return nil
	}
}

func newConnectionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONNECTION_ID",
		Short: "Get connection details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			connection, err := client.Connections().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			return outputConnection(connection)
		},
	}
}

func newConnectionsCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a connection",
		Long:  "Create a connection from a JSON payload file",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBodyFile(fromFile)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			connection, err := client.Connections().Create(context.Background(), body)
			if err != nil {
				return err
			}

			return outputConnection(connection)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "JSON file with the connection payload")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newConnectionsUpdateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "update CONNECTION_ID",
		Short: "Update a connection",
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

			connection, err := client.Connections().Update(context.Background(), args[0], body)
			if err != nil {
				return err
			}

			return outputConnection(connection)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "JSON file with the update payload")
	_ = cmd.MarkFlagRequired("from-file")

	return cmd
}

func newConnectionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CONNECTION_ID",
		Short: "Delete a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Connections().Delete(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Connection %s deleted\n", args[0])

			return nil
		},
	}
}

func newConnectionsTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test CONNECTION_ID",
		Short: "Test a connection",
		Long:  "Ask the platform to verify the connection's configured endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Connections().Test(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(result)
			case OutputFormatYAML:
				return outputYAML(result)
			default:
				fmt.Printf("Connection %s: %s", args[0], result.Status)

				if result.Message != "" {
					fmt.Printf(" (%s)", result.Message)
				}

				fmt.Println()

				return nil
			}
		},
	}
}
