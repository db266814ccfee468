// Package auth stores Fastly API tokens in the OS keyring, one per profile.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	serviceName     = "fastly-cli"
	defaultProfile  = "default"
	profilePrefix   = "profile:"
	profileIndexKey = "profiles_index"

	envKeyringBackend  = "FASTLY_KEYRING_BACKEND"
	envKeyringPassword = "FASTLY_KEYRING_PASSWORD"
	envCredentialsDir  = "FASTLY_CREDENTIALS_DIR"

	backendAuto   = "auto"
	backendFile   = "file"
	backendSystem = "system"
)

// Static errors for err113 compliance.
var (
	ErrNoCredentials      = errors.New("no API token stored - run 'fastly login' first")
	ErrKeyringPassword    = errors.New("set " + envKeyringPassword + " when using the file keyring non-interactively")
	ErrEmptyCredentialKey = errors.New("API token is empty")
)

// openKeyring can be replaced in tests.
var openKeyring = keyring.Open

var stdinHasTTY = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// SetOpenKeyring replaces the keyring opener and returns a function that
// restores the previous one.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn

	return func() { openKeyring = original }
}

// Credentials is what a profile holds.
type Credentials struct {
	Token    string `json:"token"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Store reads and writes credentials in a keyring.
type Store struct {
	ring keyring.Keyring
}

// Open opens the keyring selected by FASTLY_KEYRING_BACKEND. Headless Linux
// without a session bus uses the encrypted file backend.
func Open() (*Store, error) {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}

	return &Store{ring: ring}, nil
}

// NewStore wraps an already opened keyring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

func keyringConfig() keyring.Config {
	cfg := keyring.Config{
		ServiceName: serviceName,
	}

	backend := backendMode()
	if backend == backendSystem {
		return cfg
	}

	cfg.FileDir = fileDir()
	cfg.FilePasswordFunc = filePassword

	if backend == backendFile || (runtime.GOOS == "linux" && strings.TrimSpace(os.Getenv("DBUS_SESSION_BUS_ADDRESS")) == "") {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	return cfg
}

func backendMode() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envKeyringBackend))) {
	case backendFile:
		return backendFile
	case backendSystem, "os", "native":
		return backendSystem
	default:
		return backendAuto
	}
}

func fileDir() string {
	if dir := strings.TrimSpace(os.Getenv(envCredentialsDir)); dir != "" {
		return filepath.Join(dir, "keyring")
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), serviceName, "keyring")
	}

	return filepath.Join(home, ".fastly", "keyring")
}

func filePassword(prompt string) (string, error) {
	if password, ok := os.LookupEnv(envKeyringPassword); ok && strings.TrimSpace(password) != "" {
		return password, nil
	}

	if !stdinHasTTY() {
		return "", ErrKeyringPassword
	}

	password, err := keyring.TerminalPrompt(prompt)
	if err != nil {
		return "", fmt.Errorf("reading keyring password: %w", err)
	}

	return password, nil
}

func profileKey(name string) string {
	if name == "" {
		name = defaultProfile
	}

	return profilePrefix + name
}

// Save stores credentials under profile and records the profile name.
func (s *Store) Save(profile string, creds Credentials) error {
	if strings.TrimSpace(creds.Token) == "" {
		return ErrEmptyCredentialKey
	}

	if profile == "" {
		profile = defaultProfile
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	err = s.ring.Set(keyring.Item{
		Key:         profileKey(profile),
		Data:        data,
		Label:       "Fastly API token (" + profile + ")",
		Description: "Fastly API token",
	})
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", profile, err)
	}

	profiles, err := s.Profiles()
	if err != nil {
		return err
	}

	return s.saveIndex(append(profiles, profile))
}

// Load returns the credentials of profile. ErrNoCredentials is returned when
// nothing is stored.
func (s *Store) Load(profile string) (Credentials, error) {
	item, err := s.ring.Get(profileKey(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Credentials{}, ErrNoCredentials
		}

		return Credentials{}, fmt.Errorf("loading profile %s: %w", profile, err)
	}

	var creds Credentials

	err = json.Unmarshal(item.Data, &creds)
	if err != nil {
		return Credentials{}, fmt.Errorf("parsing profile %s: %w", profile, err)
	}

	return creds, nil
}

// Delete removes profile. Deleting a missing profile is not an error.
func (s *Store) Delete(profile string) error {
	if profile == "" {
		profile = defaultProfile
	}

	err := s.ring.Remove(profileKey(profile))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing profile %s: %w", profile, err)
	}

	profiles, err := s.Profiles()
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(profiles))

	for _, name := range profiles {
		if name != profile {
			remaining = append(remaining, name)
		}
	}

	return s.saveIndex(remaining)
}

// Profiles lists the stored profile names.
func (s *Store) Profiles() ([]string, error) {
	item, err := s.ring.Get(profileIndexKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("loading profile index: %w", err)
	}

	var profiles []string

	err = json.Unmarshal(item.Data, &profiles)
	if err != nil {
		return nil, fmt.Errorf("parsing profile index: %w", err)
	}

	return profiles, nil
}

func (s *Store) saveIndex(profiles []string) error {
	seen := make(map[string]struct{}, len(profiles))
	unique := make([]string, 0, len(profiles))

	for _, name := range profiles {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	data, err := json.Marshal(unique)
	if err != nil {
		return fmt.Errorf("marshaling profile index: %w", err)
	}

	err = s.ring.Set(keyring.Item{Key: profileIndexKey, Data: data})
	if err != nil {
		return fmt.Errorf("saving profile index: %w", err)
	}

	return nil
}
