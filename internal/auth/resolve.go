package auth

import (
	"errors"
	"os"
	"strings"
)

// EnvAPIToken is the environment variable consulted for the API token.
const EnvAPIToken = "FASTLY_API_TOKEN"

// Source tells where a resolved token came from.
type Source string

// Token sources, highest precedence first.
const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// Resolved is a token together with its origin.
type Resolved struct {
	Credentials
	Source Source
}

// Resolver picks the API token from a flag, the environment or the keyring,
// in that order.
type Resolver struct {
	// Flag is the value of --token.
	Flag string
	// Profile selects the keyring entry.
	Profile string
	// Open opens the credential store. Defaults to auth.Open.
	Open func() (*Store, error)
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Resolve returns the first non-empty token. ErrNoCredentials is returned when
// none of the sources has one.
func (r *Resolver) Resolve() (Resolved, error) {
	if token := strings.TrimSpace(r.Flag); token != "" {
		return Resolved{Credentials: Credentials{Token: token}, Source: SourceFlag}, nil
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if token := strings.TrimSpace(getenv(EnvAPIToken)); token != "" {
		return Resolved{Credentials: Credentials{Token: token}, Source: SourceEnv}, nil
	}

	open := r.Open
	if open == nil {
		open = Open
	}

	store, err := open()
	if err != nil {
		return Resolved{}, errors.Join(ErrNoCredentials, err)
	}

	creds, err := store.Load(r.Profile)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Credentials: creds, Source: SourceKeyring}, nil
}
