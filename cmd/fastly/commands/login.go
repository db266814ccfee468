package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/fastly/internal/auth"
	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Fastly API token",
		Long: `Store a Fastly API token in the OS keyring under --profile.

The token is read from --token, or prompted for. Unless --skip-verify is set
the token is checked by listing services before it is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(viper.GetString(keyToken))
			if token == "" {
				var err error

				token, err = promptToken(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			if token == "" {
				return constants.ErrEmptyToken
			}

			endpoint := viper.GetString(keyEndpoint)

			if !skipVerify {
				err := verifyToken(cmd.Context(), endpoint, token)
				if err != nil {
					return err
				}
			}

			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open keyring: %w", err)
			}

			profile := valueOr(viper.GetString(keyProfile), constants.DefaultProfile)

			err = store.Save(profile, auth.Credentials{Token: token, Endpoint: endpoint})
			if err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token saved to profile %q\n", profile)

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save the token without calling the API")

	cmd.AddCommand(newLoginProfilesCommand())

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove a stored API token",
		Long:  "Remove the API token stored in the OS keyring under --profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open keyring: %w", err)
			}

			profile := valueOr(viper.GetString(keyProfile), constants.DefaultProfile)

			err = store.Delete(profile)
			if err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token removed from profile %q\n", profile)

			return nil
		},
	}
}

func newLoginProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List stored profiles",
		Long:  "List the profiles that have an API token in the OS keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open keyring: %w", err)
			}

			profiles, err := store.Profiles()
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}

			current := valueOr(viper.GetString(keyProfile), constants.DefaultProfile)

			return renderOutput(cmd.OutOrStdout(), profiles, func(table *tablewriter.Table) {
				table.Header("Profile", "Current")

				for _, name := range profiles {
					_ = table.Append(name, boolText(name == current))
				}
			})
		},
	}
}

func promptToken(in io.Reader, prompt io.Writer) (string, error) {
	_, _ = fmt.Fprint(prompt, "Fastly API token: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func verifyToken(ctx context.Context, endpoint, token string) error {
	client, err := newClient(ctx, &fastly.Config{
		BaseURL:   endpoint,
		APIKey:    &fastly.APIKey{Key: token},
		UserAgent: "fastly-cli/" + cliVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	_, err = client.Services().List(ctx)
	if err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	return nil
}
