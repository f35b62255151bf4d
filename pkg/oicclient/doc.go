// Package oicclient provides the primary entry point for constructing an
// Oracle Integration Cloud client that implements the oic.Client interface.
//
// It layers configuration, HTTP transport, and OAuth2 token management on top
// of the resource interfaces and types defined in the oic package. Most
// applications should import oicclient to build a client, then use the
// returned oic.Client to access resource-specific clients, for example
// Integrations(), Connections(), Lookups(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/WolVesz/oic-devops/pkg/oic"
//	  "github.com/WolVesz/oic-devops/pkg/oicclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := oicclient.New(ctx, &oic.Config{
//	    InstanceURL:    "https://myinstance.integration.ocp.oraclecloud.com",
//	    AuthURL:        "https://idcs-xxxx.identity.oraclecloud.com/oauth2/v1/token",
//	    IdentityDomain: "myinstance",
//	    Username:       "svc-user",
//	    Password:       "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  integrations, err := cli.Integrations().List(ctx, oic.NewQueryParams())
//	  if err != nil { log.Fatal(err) }
//	  _ = integrations
//	}
//
// Profiles
//
// Credentials normally live in a profiles file rather than in code. Use
// NewFromProfile to resolve a named profile from ~/.oic/config.yml (or an
// explicit path) and build a client from it:
//
//	cli, err := oicclient.NewFromProfile(ctx, "", "production")
package oicclient
