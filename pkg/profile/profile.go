// Package profile resolves named credential profiles from a YAML
// configuration file. Resolution is purely local: no network I/O happens
// until the resulting config is handed to a client.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// DefaultProfileName is used when no profile name is given and the config
// file does not name a default.
const DefaultProfileName = "default"

// Record is one resolved profile. Records are immutable snapshots of the
// config file at load time.
type Record struct {
	Name           string
	InstanceURL    string
	AuthURL        string
	IdentityDomain string
	Username       string
	Password       string
	Scope          string
	Timeout        time.Duration
	VerifyTLS      bool
}

// ClientConfig converts the record into an oic.Config.
func (r *Record) ClientConfig() *oic.Config {
	return &oic.Config{
		InstanceURL:    r.InstanceURL,
		AuthURL:        r.AuthURL,
		IdentityDomain: r.IdentityDomain,
		Username:       r.Username,
		Password:       r.Password,
		Scope:          r.Scope,
		Timeout:        r.Timeout,
		SkipTLSVerify:  !r.VerifyTLS,
	}
}

// fileProfile is the on-disk shape of one profile entry.
type fileProfile struct {
	InstanceURL    string `yaml:"instance_url"`
	AuthURL        string `yaml:"auth_url"`
	IdentityDomain string `yaml:"identity_domain"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Scope          string `yaml:"scope"`
	// TimeoutSeconds mirrors the platform SDK convention of whole seconds.
	TimeoutSeconds int   `yaml:"timeout"`
	VerifySSL      *bool `yaml:"verify_ssl"`
}

// fileConfig is the on-disk shape of the whole profiles file.
type fileConfig struct {
	Default  string                 `yaml:"default"`
	Profiles map[string]fileProfile `yaml:"profiles"`
}

// Store holds the parsed profiles file.
type Store struct {
	path   string
	config fileConfig
}

// NewStore loads the profiles file at path. An empty path searches the
// default locations: ./.oic.yml, then ~/.oic/config.yml. Profile names are
// case-sensitive, exactly as written in the file.
func NewStore(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &oic.ConfigurationError{Detail: fmt.Sprintf("reading profiles file %s: %v", resolved, err)}
	}

	var config fileConfig

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, &oic.ConfigurationError{Detail: fmt.Sprintf("parsing profiles file %s: %v", resolved, err)}
	}

	return &Store{path: resolved, config: config}, nil
}

// starterFile is the scaffold written by WriteStarterFile. Every field the
// resolver understands appears once, commented where optional.
const starterFile = `# Credential profiles for the oic CLI.
default: production

profiles:
  production:
    instance_url: https://myinstance.integration.ocp.oraclecloud.com
    auth_url: https://idcs-xxxx.identity.oraclecloud.com/oauth2/v1/token
    identity_domain: idcs-xxxx
    username: svc-integration
    password: changeme
    # scope: urn:opc:resource:consumer::all
    # timeout: 300
    # verify_ssl: true
`

// WriteStarterFile creates a profiles file scaffold at path, or at
// ~/.oic/config.yml when path is empty. It refuses to overwrite an existing
// file and creates the parent directory when needed. The written path is
// returned.
func WriteStarterFile(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", &oic.ConfigurationError{Detail: "resolving home directory: " + err.Error()}
		}

		path = filepath.Join(home, ".oic", "config.yml")
	}

	if _, err := os.Stat(path); err == nil {
		return "", &oic.ConfigurationError{Detail: "profiles file already exists: " + path}
	}

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return "", &oic.ConfigurationError{Detail: "creating profiles directory: " + err.Error()}
	}

	// The file holds credentials, so keep it owner-readable only.
	err = os.WriteFile(path, []byte(starterFile), constants.ConfigFilePerm)
	if err != nil {
		return "", &oic.ConfigurationError{Detail: "writing profiles file: " + err.Error()}
	}

	return path, nil
}

// resolvePath picks the profiles file to load.
func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", &oic.ConfigurationError{Detail: "profiles file not found: " + path}
		}

		return path, nil
	}

	candidates := []string{".oic.yml"}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".oic", "config.yml"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", &oic.ConfigurationError{Detail: "no profiles file found (looked for ./.oic.yml and ~/.oic/config.yml)"}
}

// Path returns the location of the loaded profiles file.
func (s *Store) Path() string {
	return s.path
}

// Names returns the profile names present in the file.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.config.Profiles))
	for name := range s.config.Profiles {
		names = append(names, name)
	}

	return names
}

// DefaultName returns the profile used when Resolve is called with an empty
// name.
func (s *Store) DefaultName() string {
	if s.config.Default != "" {
		return s.config.Default
	}

	return DefaultProfileName
}

// Resolve returns the named profile with defaults applied. An empty name
// resolves the default profile.
func (s *Store) Resolve(name string) (*Record, error) {
	if name == "" {
		name = s.DefaultName()
	}

	entry, ok := s.config.Profiles[name]
	if !ok {
		return nil, &oic.ConfigurationError{Profile: name, Detail: "profile not found in " + s.path}
	}

	record := &Record{
		Name:           name,
		InstanceURL:    entry.InstanceURL,
		AuthURL:        entry.AuthURL,
		IdentityDomain: entry.IdentityDomain,
		Username:       entry.Username,
		Password:       entry.Password,
		Scope:          entry.Scope,
		Timeout:        constants.DefaultHTTPTimeout,
		VerifyTLS:      true,
	}

	if entry.TimeoutSeconds > 0 {
		record.Timeout = time.Duration(entry.TimeoutSeconds) * time.Second
	}

	if entry.VerifySSL != nil {
		record.VerifyTLS = *entry.VerifySSL
	}

	err := record.validate()
	if err != nil {
		return nil, err
	}

	return record, nil
}

// validate checks that all required fields are present.
func (r *Record) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"instance_url", r.InstanceURL},
		{"auth_url", r.AuthURL},
		{"username", r.Username},
		{"password", r.Password},
	}

	for _, req := range required {
		if req.value == "" {
			return &oic.ConfigurationError{Profile: r.Name, Detail: "missing required field " + req.field}
		}
	}

	return nil
}
