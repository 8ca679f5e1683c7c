// Package msclient constructs Microsoft Partner Center and Microsoft Graph
// clients.
//
// Both constructors validate the msapi.Config, fill in the service defaults
// (base URL, OAuth2 scope, token endpoint, refresh token key) and return a
// client whose resource accessors share one token manager and one request
// pipeline:
//
//	pc, err := msclient.NewPartnerCenter(ctx, &msapi.Config{
//		TenantDomain: "contoso.onmicrosoft.com",
//		Authentication: msapi.RefreshTokenCredentials{
//			ClientID:     clientID,
//			ClientSecret: clientSecret,
//			RefreshToken: refreshToken,
//		},
//		OnRefreshTokenRotated: func(token string) { save(token) },
//	})
//
// The caller's config is not modified.
package msclient
