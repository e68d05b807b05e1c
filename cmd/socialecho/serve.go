package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TanakaAkihiro0930/SocialEcho/devmode"
	"github.com/TanakaAkihiro0930/SocialEcho/devserver"
)

func (a *app) newServeDevCmd() *cobra.Command {
	var addr, secret string

	cmd := &cobra.Command{
		Use:   "serve-dev",
		Short: "Run the in-memory development backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := devserver.New(devserver.WithSecret([]byte(secret)))
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", getEnv("SOCIALECHO_DEV_ADDR", ":5000"), "Listen address")
	cmd.Flags().StringVar(&secret, "secret", devmode.SigningSecret, "HS256 signing secret")
	return cmd
}

func (a *app) newDevTokenCmd() *cobra.Command {
	var userID, secret string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "dev-token",
		Short: "Mint a token accepted by the development backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := devserver.IssueToken([]byte(secret), userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", devmode.UserID, "Token subject")
	cmd.Flags().StringVar(&secret, "secret", devmode.SigningSecret, "HS256 signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}


// getEnv returns the value of key, or def when it is unset or empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
