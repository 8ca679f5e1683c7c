// Package msapi provides types, interfaces, and helpers for working with the
// Microsoft Partner Center and Microsoft Graph REST APIs.
//
// # Overview
//
// The msapi package defines the domain types (e.g., Customer, Subscription,
// Invoice, GDAPRelationship, Domain) and the interfaces for resource-oriented
// clients (e.g., CustomersClient, GDAPClient). A concrete implementation of
// these clients is provided by the msclient package, which wires configuration,
// transport, and authentication. Most consumers should import msclient to
// construct a client and then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
//	  "github.com/fivetwenty-io/partnercenter-client/pkg/msclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  pc, err := msclient.NewPartnerCenter(ctx, &msapi.Config{
//	    TenantDomain: "contoso.onmicrosoft.com",
//	    Authentication: msapi.ClientCredentials{
//	      ClientID:     "app-id",
//	      ClientSecret: "secret",
//	    },
//	    Conflict: msapi.DefaultConflictPolicy(),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  customers, err := pc.Customers().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = customers
//	}
//
// # Authentication
//
// Config.Authentication is one of ClientCredentials, RefreshTokenCredentials,
// or BearerToken. Tokens obtained through the OAuth2 grants are cached per
// client and renewed when the access token's exp claim has passed. The claim
// is decoded without verifying the signature; the remote service remains the
// authority on validity.
//
// # Retries
//
// A 401 from the API triggers one re-authentication and one resubmission per
// call. A 409 is retried up to ConflictPolicy.MaxRetries times, waiting
// ConflictPolicy.Delay before each attempt, when the policy is enabled.
// Everything else is returned to the caller unchanged, as a *ResponseError
// when the service answered with an error status.
//
// # Errors
//
// Use errors.Is with ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict,
// or ErrTooManyRequests, or the IsNotFound / IsConflict helpers. Token
// endpoint failures are reported as *AuthenticationError.
package msapi
