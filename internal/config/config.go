// Package config resolves the generator settings from flags, the
// environment and an optional .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported listing APIs.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// Setting keys, also used as flag names.
const (
	KeyUser          = "user"
	KeyToken         = "token"
	KeyAPI           = "api"
	KeyAPIURL        = "api-url"
	KeyGraphQLURL    = "graphql-url"
	KeyDataDir       = "data-dir"
	KeyWaitRateLimit = "wait-rate-limit"
	KeyVerbose       = "verbose"
)

// DefaultUser is the account whose repositories are listed.
const DefaultUser = "nurodev"

// Config holds the resolved settings of one run.
type Config struct {
	User          string
	Token         string
	API           string
	APIURL        string
	GraphQLURL    string
	DataDir       string
	WaitRateLimit bool
	Verbose       bool
}

// New returns a viper instance with defaults and environment bindings.
// Environment variables use the PORTFOLIO_ prefix, e.g. PORTFOLIO_API_URL.
// The token is read from GITHUB_PAT, then GITHUB_TOKEN.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("portfolio")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyToken, "GITHUB_PAT", "GITHUB_TOKEN")

	v.SetDefault(KeyUser, DefaultUser)
	v.SetDefault(KeyAPI, APIREST)
	return v
}

// BindFlags lets explicitly set flags take precedence over the environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(f.Name, f)
	})
	return err
}

// Load reads and validates the settings.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		User:          v.GetString(KeyUser),
		Token:         v.GetString(KeyToken),
		API:           strings.ToLower(v.GetString(KeyAPI)),
		APIURL:        v.GetString(KeyAPIURL),
		GraphQLURL:    v.GetString(KeyGraphQLURL),
		DataDir:       v.GetString(KeyDataDir),
		WaitRateLimit: v.GetBool(KeyWaitRateLimit),
		Verbose:       v.GetBool(KeyVerbose),
	}

	if cfg.User == "" {
		return nil, fmt.Errorf("%s must not be empty", KeyUser)
	}
	switch cfg.API {
	case APIREST:
	case APIGraphQL:
		if cfg.Token == "" {
			return nil, fmt.Errorf("the GraphQL API requires a token: set GITHUB_PAT or GITHUB_TOKEN")
		}
	default:
		return nil, fmt.Errorf("unknown API %q: use %q or %q", cfg.API, APIREST, APIGraphQL)
	}
	return cfg, nil
}
