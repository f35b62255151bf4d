package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WolVesz/oic-devops/pkg/profile"
)

// openProfileStore loads the profiles file named by --config (or the default
// locations).
func openProfileStore() (*profile.Store, error) {
	return profile.NewStore(viper.GetString("config"))
}

// NewProfilesCommand creates the profiles command group.
func NewProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage credential profiles",
		Long:    "Inspect the credential profiles available in the profiles file",
	}

	cmd.AddCommand(newProfilesListCommand())
	cmd.AddCommand(newProfilesShowCommand())
	cmd.AddCommand(newProfilesInitCommand())

	return cmd
}

func newProfilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProfileStore()
			if err != nil {
				return err
			}

			names := store.Names()

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(names)
			case OutputFormatYAML:
				return outputYAML(names)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Default")

				defaultName := store.DefaultName()
				for _, name := range names {
					isDefault := ""
					if name == defaultName {
						isDefault = "yes"
					}

					_ = table.Append(name, isDefault)
				}

				_ = table.Render()

				fmt.Printf("\nProfiles file: %s\n", store.Path())

				return nil
			}
		},
	}
}

func newProfilesInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a starter profiles file",
		Long:  "Write a profiles file scaffold to --config or ~/.oic/config.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := profile.WriteStarterFile(viper.GetString("config"))
			if err != nil {
				return err
			}

			fmt.Printf("Wrote starter profiles file to %s\n", path)
			fmt.Println("Edit it to add your instance credentials before running other commands.")

			return nil
		},
	}
}

func newProfilesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [PROFILE_NAME]",
		Short: "Show profile details",
		Long:  "Display a profile's settings with the password masked",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProfileStore()
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			record, err := store.Resolve(name)
			if err != nil {
				return err
			}

			// Never print the password
			view := map[string]interface{}{
				"name":            record.Name,
				"instance_url":    record.InstanceURL,
				"auth_url":        record.AuthURL,
				"identity_domain": record.IdentityDomain,
				"username":        record.Username,
				"password":        "***",
				"scope":           record.Scope,
				"timeout":         record.Timeout.String(),
				"verify_ssl":      record.VerifyTLS,
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(view)
			case OutputFormatYAML:
				return outputYAML(view)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("Name", record.Name)
				_ = table.Append("Instance URL", record.InstanceURL)
				_ = table.Append("Auth URL", record.AuthURL)
				_ = table.Append("Identity Domain", record.IdentityDomain)
				_ = table.Append("Username", record.Username)
				_ = table.Append("Password", "***")
				_ = table.Append("Scope", record.Scope)
				_ = table.Append("Timeout", record.Timeout.String())
				_ = table.Append("Verify SSL", fmt.Sprintf("%t", record.VerifyTLS))
				_ = table.Render()

				return nil
			}
		},
	}
}
