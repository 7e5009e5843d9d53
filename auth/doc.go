// Package auth supplies bearer credentials for management API calls.
//
// The shared contract is TokenSource. Implementations:
//
//   - StaticToken        a fixed, pre-issued management API token
//   - ClientCredentials  the OAuth2 client_credentials grant against the
//     tenant's oauth/token endpoint, cached until shortly before expiry
//   - TokenSourceFunc    adapts an ordinary function
//
// Configuration follows the usual ApplyDefaults/Validate convention:
//
//	cc, err := auth.NewClientCredentials(auth.Config{
//	    TokenURL:     "https://tenant.example.com/oauth/token",
//	    ClientID:     id,
//	    ClientSecret: secret,
//	    Audience:     "https://tenant.example.com/api/v2/",
//	}, log)
//	token, err := cc.Token(ctx)
package auth
