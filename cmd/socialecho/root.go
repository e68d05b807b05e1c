package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TanakaAkihiro0930/SocialEcho/client"
	"github.com/TanakaAkihiro0930/SocialEcho/credential"
	"github.com/TanakaAkihiro0930/SocialEcho/internal/config"
)

// errRequestFailed is returned after a failed envelope has been printed.
var errRequestFailed = errors.New("request failed")

// app carries the state shared by subcommands of one root command.
type app struct {
	configPath string
	apiURL     string
	debug      bool

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "socialecho",
		Short:         "Command line client for the SocialEcho posts API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.InitLoggerTo(cmd.ErrOrStderr())

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = a.apiURL
			}
			if a.debug {
				cfg.Debug = true
				cfg.LogLevel = "debug"
			}

			if cfg.Debug {
				config.SetLogLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				config.SetLogLevel(cfg.Level())
			}
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default ~/.socialecho/config.toml)")
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Base URL of the posts API (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(
		a.newCreatePostCmd(),
		a.newGetPostsCmd(),
		a.newGetCommunityPostsCmd(),
		a.newDeletePostCmd(),
		a.newLikeCmd(),
		a.newUnlikeCmd(),
		a.newCommentCmd(),
		a.newGetCommentsCmd(),
		a.newSaveCmd(),
		a.newUnsaveCmd(),
		a.newGetSavedCmd(),
		a.newGetPublicPostsCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newServeDevCmd(),
		a.newDevTokenCmd(),
	)

	return rootCmd
}

// withStore opens the configured credential store for the duration of fn.
func (a *app) withStore(ctx context.Context, fn func(credential.Store) error) error {
	store, closeFn, err := a.cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil {
			log.Warn().Err(cerr).Msg("close credential store")
		}
	}()
	return fn(store)
}

// run builds a client, executes one call and prints its envelope.
func (a *app) run(cmd *cobra.Command, op string, call func(context.Context, *client.Client) client.Result) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return a.withStore(ctx, func(store credential.Store) error {
		opts := []client.Option{
			client.WithCredentialProvider(a.cfg.Provider(store)),
			client.WithDebugLogging(a.cfg.Debug),
		}
		if a.cfg.HTTPTimeout > 0 {
			opts = append(opts, client.WithHTTPTimeout(a.cfg.HTTPTimeout))
		}
		c, err := client.New(a.cfg.APIURL, opts...)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		log.Debug().Str("operation", op).Str("api_url", a.cfg.APIURL).Msg("calling posts api")

		start := time.Now()
		res := call(ctx, c)
		elapsed := time.Since(start)

		if err := printJSON(cmd, res); err != nil {
			return err
		}
		if !res.OK() {
			log.Debug().Str("operation", op).Str("error", res.ErrorMessage()).Dur("elapsed", elapsed).Msg("call failed")
			return fmt.Errorf("%s: %w: %s", op, errRequestFailed, res.ErrorMessage())
		}
		log.Debug().Str("operation", op).Dur("elapsed", elapsed).Msg("call completed")
		return nil
	})
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
