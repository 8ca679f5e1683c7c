package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msclient"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		tenant       string
		clientID     string
		clientSecret string
		refreshToken string
		skipVerify   bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save credentials for a partner tenant",
		Long: `Save the tenant, application ID and secret used to call Partner Center
and Microsoft Graph. The secret is prompted for when not given. Unless
--skip-verify is set, a token is requested before anything is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if tenant != "" {
				config.Tenant = tenant
			}

			if clientID != "" {
				config.ClientID = clientID
			}

			if refreshToken != "" {
				config.RefreshToken = refreshToken
			}

			if clientSecret == "" && config.ClientSecret == "" {
				secret, err := promptSecret("Client secret: ")
				if err != nil {
					return err
				}

				clientSecret = secret
			}

			if clientSecret != "" {
				config.ClientSecret = clientSecret
			}

			if !skipVerify {
				err := verifyLogin(cmd, config)
				if err != nil {
					return err
				}
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			printMessage("Logged in to %s as application %s", config.Tenant, config.ClientID)

			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "partner tenant domain or ID")
	cmd.Flags().StringVar(&clientID, "client-id", "", "application (client) ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "application secret (prompted when omitted)")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "refresh token for app+user authentication")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save without requesting a token")

	return cmd
}

// verifyLogin requests a Partner Center token. A rotated refresh token is
// carried into config when there is no separate token store.
func verifyLogin(cmd *cobra.Command, config *Config) error {
	ctx := cmd.Context()

	setup, err := buildClientSetup(ctx, config)
	if err != nil {
		return err
	}
	defer setup.Close()

	setup.config.OnRefreshTokenRotated = nil

	pc, err := msclient.NewPartnerCenter(ctx, setup.config)
	if err != nil {
		return err
	}

	source, ok := msclient.TokenSource(ctx, pc)
	if !ok {
		return ErrNotLoggedIn
	}

	_, err = source.Token()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if setup.store != nil {
		return nil
	}

	rotated, err := pc.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if rotated != "" {
		config.RefreshToken = rotated
	}

	return nil
}

func promptSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int

	if !term.IsTerminal(fd) {
		return "", ErrClientSecretMissing
	}

	_, _ = fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}
