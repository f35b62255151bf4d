// Package oic provides types, interfaces, and helpers for working with the
// Oracle Integration Cloud REST API.
//
// # Overview
//
// The oic package defines the domain records (Integration, Connection,
// Library, Lookup, Package, Instance) and the interfaces for resource-oriented
// clients (IntegrationsClient, ConnectionsClient, and so on). A concrete
// implementation is provided by the oicclient package, which wires
// configuration, transport, and authentication. Most consumers should import
// oicclient to construct a client and then interact with the resource client
// interfaces exposed here.
//
// Getting a client
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
//	  cli, err := oicclient.New(ctx, &oic.Config{
//	    InstanceURL:    "https://myinstance.integration.ocp.oraclecloud.com",
//	    AuthURL:        "https://idcs.example.identity.oraclecloud.com/oauth2/v1/token",
//	    IdentityDomain: "myinstance",
//	    Username:       "svc_user",
//	    Password:       "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  integrations, err := cli.Integrations().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = integrations
//	}
//
// # Errors
//
// Failures are classified into ConfigurationError, AuthenticationError,
// NotFoundError, RequestError, and TransientError. Helpers such as IsNotFound
// and IsTransient make it easy to branch on common cases. Transient failures
// are retried with bounded backoff before being surfaced; everything else
// surfaces unchanged.
//
// # Records are pass-through
//
// The platform owns the resource schemas. Create and update payloads are plain
// maps, and the typed records model only the envelope fields needed for
// display and path construction.
package oic
