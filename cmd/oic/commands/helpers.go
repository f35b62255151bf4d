// Package commands implements the oic CLI command tree.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/WolVesz/oic-devops/pkg/oicclient"
)

// Output formats.
const (
	OutputFormatTable = constants.FormatTable
	OutputFormatJSON  = constants.FormatJSON
	OutputFormatYAML  = constants.FormatYAML
)

// CreateClient builds an oic.Client from the active profile or, when
// OIC_INSTANCE_URL is set, directly from environment configuration.
func CreateClient() (oic.Client, error) {
	ctx := context.Background()

	if viper.GetString("instance_url") != "" {
		config, err := configFromEnvironment()
		if err != nil {
			return nil, err
		}

		attachLogger(config)

		return oicclient.New(ctx, config)
	}

	store, err := openProfileStore()
	if err != nil {
		return nil, err
	}

	record, err := store.Resolve(viper.GetString("profile"))
	if err != nil {
		return nil, err
	}

	config := record.ClientConfig()
	attachLogger(config)

	return oicclient.New(ctx, config)
}

// configFromEnvironment builds a config from OIC_* environment variables,
// prompting for the password when it is absent and stdin is a terminal.
func configFromEnvironment() (*oic.Config, error) {
	config := &oic.Config{
		InstanceURL:    viper.GetString("instance_url"),
		AuthURL:        viper.GetString("auth_url"),
		IdentityDomain: viper.GetString("identity_domain"),
		Username:       viper.GetString("username"),
		Password:       viper.GetString("password"),
		Scope:          viper.GetString("scope"),
	}

	if config.Username != "" && config.Password == "" {
		password, err := promptPassword(fmt.Sprintf("Password for %s: ", config.Username))
		if err != nil {
			return nil, err
		}

		config.Password = password
	}

	return config, nil
}

// attachLogger installs a zap-backed debug logger when --verbose is set.
func attachLogger(config *oic.Config) {
	if !viper.GetBool("verbose") {
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return
	}

	config.Debug = true
	config.Logger = &zapAdapter{sugar: logger.Sugar()}
}

// zapAdapter adapts a zap sugared logger to the oic.Logger interface.
type zapAdapter struct {
	sugar *zap.SugaredLogger
}

func (l *zapAdapter) Debug(msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, flatten(fields)...)
}

func (l *zapAdapter) Info(msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, flatten(fields)...)
}

func (l *zapAdapter) Warn(msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, flatten(fields)...)
}

func (l *zapAdapter) Error(msg string, fields map[string]interface{}) {
	l.sugar.Errorw(msg, flatten(fields)...)
}

func flatten(fields map[string]interface{}) []interface{} {
	kvs := make([]interface{}, 0, len(fields)*2)
	for key, value := range fields {
		kvs = append(kvs, key, value)
	}

	return kvs
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", &oic.ConfigurationError{Detail: "password not set and stdin is not a terminal"}
	}

	fmt.Fprint(os.Stderr, prompt)

	password, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(password), nil
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// outputYAML writes v to stdout as YAML.
func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return nil
}

// writeArchiveFile saves exported archive bytes to disk.
func writeArchiveFile(path string, data []byte) error {
	err := os.WriteFile(path, data, constants.ExportFilePerm)
	if err != nil {
		return fmt.Errorf("writing archive file: %w", err)
	}

	return nil
}

// readArchiveFile loads an archive for import.
func readArchiveFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive file: %w", err)
	}

	return data, nil
}
