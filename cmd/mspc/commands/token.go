package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msclient"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

// tokenHolder is satisfied by both service clients.
type tokenHolder interface {
	RefreshToken(ctx context.Context) (string, error)
}

type tokenInfo struct {
	AccessToken  string `json:"access_token"            yaml:"access_token"`
	TokenType    string `json:"token_type"              yaml:"token_type"`
	Expiry       string `json:"expiry,omitempty"        yaml:"expiry,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
}

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	var (
		graph        bool
		refreshToken bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token",
		Long: `Obtain an access token with the configured credentials and print it.

By default the token is issued for Partner Center; --graph requests one for
Microsoft Graph. --refresh-token prints the refresh token currently held
instead, authenticating first when needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			setup, err := buildClientSetup(ctx, loadConfig())
			if err != nil {
				return err
			}
			defer setup.Close()

			var client tokenHolder
			if graph {
				client, err = msclient.NewGraph(ctx, setup.config)
			} else {
				client, err = msclient.NewPartnerCenter(ctx, setup.config)
			}

			if err != nil {
				return err
			}

			if refreshToken {
				return printRefreshToken(ctx, client)
			}

			return printAccessToken(ctx, client)
		},
	}

	cmd.Flags().BoolVar(&graph, "graph", false, "request a Microsoft Graph token")
	cmd.Flags().BoolVar(&refreshToken, "refresh-token", false, "print the refresh token instead of the access token")

	return cmd
}

func printAccessToken(ctx context.Context, client tokenHolder) error {
	source, ok := msclient.TokenSource(ctx, client)
	if !ok {
		return fmt.Errorf("%w: client exposes no token source", ErrNotLoggedIn)
	}

	token, err := source.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain token: %w", err)
	}

	info := newTokenInfo(token)

	return renderOutput(info, func() error {
		return renderProperties([][]string{
			{"Access Token", info.AccessToken},
			{"Type", info.TokenType},
			{"Expiry", formatValue(info.Expiry)},
		})
	})
}

func printRefreshToken(ctx context.Context, client tokenHolder) error {
	refreshToken, err := client.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain refresh token: %w", err)
	}

	info := tokenInfo{RefreshToken: refreshToken}

	return renderOutput(info, func() error {
		return renderProperties([][]string{
			{"Refresh Token", formatValue(refreshToken)},
		})
	})
}

func newTokenInfo(token *oauth2.Token) tokenInfo {
	info := tokenInfo{
		AccessToken: token.AccessToken,
		TokenType:   token.Type(),
	}

	if !token.Expiry.IsZero() {
		info.Expiry = token.Expiry.Local().Format("2006-01-02 15:04:05 MST")
	}

	return info
}
