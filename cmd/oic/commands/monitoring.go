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

// NewMonitoringCommand creates the monitoring command group.
func NewMonitoringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "monitoring",
		Aliases: []string{"mon"},
		Short:   "Inspect integration runs",
		Long:    "Track run instances, errors, and aggregate statistics",
	}

	cmd.AddCommand(newMonitoringInstancesCommand())
	cmd.AddCommand(newMonitoringInstanceCommand())
	cmd.AddCommand(newMonitoringActivitiesCommand())
	cmd.AddCommand(newMonitoringErrorsCommand())
	cmd.AddCommand(newMonitoringStatsCommand())
	cmd.AddCommand(newMonitoringResubmitCommand())

	return cmd
}

func newMonitoringInstancesCommand() *cobra.Command {
	var (
		limit  int
		status string
	)

	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List run instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := oic.NewQueryParams()
			params.Limit = limit
			params.Status = status

			result, err := client.Monitoring().ListInstances(context.Background(), params)
			if err != nil {
				return err
			}

			return outputInstances(result.Items)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")
	cmd.Flags().StringVar(&status, "status", "", "filter by run status (COMPLETED, FAILED, ...)")

	return cmd
}

func outputInstances(instances []oic.Instance) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(instances)
	case OutputFormatYAML:
		return outputYAML(instances)
	default:
		if len(instances) == 0 {
			_, _ = os.Stdout.WriteString("No instances found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Integration", "Status", "Created")

		for _, instance := range instances {
			_ = table.Append(instance.ID, instance.IntegrationID, instance.Status, instance.CreationDate)
		}

		_ = table.Render()

		return nil
	}
}

func newMonitoringInstanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "instance INSTANCE_ID",
		Short: "Get run instance details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			instance, err := client.Monitoring().GetInstance(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(instance)
			case OutputFormatYAML:
				return outputYAML(instance)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", instance.ID)
				_ = table.Append("Integration", instance.IntegrationID)
				_ = table.Append("Status", instance.Status)
				_ = table.Append("Created", instance.CreationDate)
				_ = table.Render()

				return nil
			}
		},
	}
}

func newMonitoringActivitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activities INSTANCE_ID",
		Short: "Show a run instance's activity stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			activities, err := client.Monitoring().GetInstanceActivities(context.Background(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(activities)
			case OutputFormatYAML:
				return outputYAML(activities)
			default:
				if len(activities) == 0 {
					_, _ = os.Stdout.WriteString("No activities found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Activity", "Status", "Time")

				for _, activity := range activities {
					_ = table.Append(stringField(activity, "activity"),
						stringField(activity, "status"), stringField(activity, "time"))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newMonitoringErrorsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "List errored run instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := oic.NewQueryParams()
			params.Limit = limit

			errored, err := client.Monitoring().ListErrors(context.Background(), params)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(errored)
			case OutputFormatYAML:
				return outputYAML(errored)
			default:
				if len(errored) == 0 {
					_, _ = os.Stdout.WriteString("No errors found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Instance", "Integration", "Message")

				for _, entry := range errored {
					_ = table.Append(stringField(entry, "instanceId"),
						stringField(entry, "integrationId"), stringField(entry, "errorMessage"))
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")

	return cmd
}

func newMonitoringStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate run statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			stats, err := client.Monitoring().IntegrationStats(context.Background(), nil)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case OutputFormatYAML:
				return outputYAML(stats)
			default:
				return outputJSON(stats)
			}
		},
	}
}

func newMonitoringResubmitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resubmit INSTANCE_ID",
		Short: "Resubmit a failed run instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Monitoring().ResubmitInstance(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Instance %s resubmitted\n", args[0])

			return nil
		},
	}
}
