package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TanakaAkihiro0930/SocialEcho/credential"
)

func (a *app) newLoginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token in the credential store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				read, err := readToken(cmd)
				if err != nil {
					return err
				}
				token = read
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("access token is empty")
			}

			return a.withStore(cmd.Context(), func(store credential.Store) error {
				if store == nil {
					return errors.New("credential store is disabled")
				}
				profile := credential.Profile{
					AccessToken:          token,
					AccessTokenUpdatedAt: time.Now().UTC().Format(time.RFC3339),
				}
				if err := credential.SaveProfile(cmd.Context(), store, a.cfg.CredentialKey, profile); err != nil {
					return err
				}
				log.Debug().Str("credential_store", a.cfg.CredentialStore).Msg("access token stored")
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Access token saved")
				return err
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Access token (prompted without echo when omitted)")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store credential.Store) error {
				if store == nil {
					return nil
				}
				if err := credential.ClearProfile(cmd.Context(), store, a.cfg.CredentialKey); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Access token removed")
				return err
			})
		},
	}
}

// readToken prompts on a terminal without echo, or reads one line from a
// non-terminal stdin.
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Access token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token: %w", err)
	}
	return line, nil
}
