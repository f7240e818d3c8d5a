package domain

import "time"

// AppSettings is the application configuration: OAuth client identity,
// backend endpoints, polling cadences and local paths.
type AppSettings struct {
	OAuth      OAuthSettings      `toml:"oauth"`
	API        APISettings        `toml:"api"`
	Polling    PollingSettings    `toml:"polling"`
	Generation GenerationSettings `toml:"generation"`
}

// OAuthSettings identifies the OAuth client and its endpoints.
type OAuthSettings struct {
	// ClientID is the OAuth client identifier.
	ClientID string `toml:"client_id"`
	// RedirectURI is the registered redirect target. The client never
	// serves it; the server parks the code for the code-by-state lookup.
	RedirectURI string `toml:"redirect_uri"`
	// AuthURL is the authorization endpoint.
	AuthURL string `toml:"auth_url"`
	// TokenURL is the token endpoint.
	TokenURL string `toml:"token_url"`
	// CodeByStateURL is the side-channel code lookup endpoint.
	CodeByStateURL string `toml:"code_by_state_url"`
	// UserLookupURL resolves a user id from an access token.
	UserLookupURL string `toml:"user_lookup_url"`
	// Scopes are the requested OAuth scopes.
	Scopes []string `toml:"scopes"`
}

// APISettings holds the non-OAuth backend endpoints.
type APISettings struct {
	// AccountBaseURL serves the user settings (premium) lookup.
	AccountBaseURL string `toml:"account_base_url"`
	// MediaBaseURL serves credits, generation and enhancement.
	MediaBaseURL string `toml:"media_base_url"`
	// PricingBaseURL serves the purchase pages.
	PricingBaseURL string `toml:"pricing_base_url"`
}

// PollingSettings holds the cadences of the long-running loops.
type PollingSettings struct {
	// CodeInterval is the bounded-rate delay between code-by-state
	// polls during authentication.
	CodeInterval time.Duration `toml:"code_interval"`
	// EntitlementInterval is the entitlement poller cadence.
	EntitlementInterval time.Duration `toml:"entitlement_interval"`
	// PurchaseInterval is the purchase watcher cadence.
	PurchaseInterval time.Duration `toml:"purchase_interval"`
	// PurchaseTimeout bounds a purchase watch session.
	PurchaseTimeout time.Duration `toml:"purchase_timeout"`
}

// GenerationSettings holds generation output configuration.
type GenerationSettings struct {
	// OutputDir is where generated media is inserted.
	OutputDir string `toml:"output_dir"`
}

// DefaultAppSettings returns the built-in configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		OAuth: OAuthSettings{
			ClientID:       "HGn3aX2z6aOFhikeyc2MXLcrEdxw6apkZo2W0MiW",
			RedirectURI:    "https://multiplewords.com/oauth/office/callback/",
			AuthURL:        "https://multiplewords.com/oauth/office/authorize/",
			TokenURL:       "https://multiplewords.com/oauth/office/token/",
			CodeByStateURL: "https://multiplewords.com/oauth/office/code-by-state/",
			UserLookupURL:  "https://multiplewords.com/oauth/check-canva-token",
			Scopes:         []string{"read", "write"},
		},
		API: APISettings{
			AccountBaseURL: "https://multiplewords.com",
			MediaBaseURL:   "https://shorts.multiplewords.com",
			PricingBaseURL: "https://saifs.ai",
		},
		Polling: PollingSettings{
			CodeInterval:        500 * time.Millisecond,
			EntitlementInterval: 3 * time.Second,
			PurchaseInterval:    3 * time.Second,
			PurchaseTimeout:     5 * time.Minute,
		},
		Generation: GenerationSettings{
			OutputDir: "",
		},
	}
}
