package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/renix-codex/posts/internal/api"
	"github.com/renix-codex/posts/internal/config"
	"github.com/renix-codex/posts/internal/ingest"
	"github.com/renix-codex/posts/internal/ingest/store"
	"github.com/renix-codex/posts/internal/logger"
	"github.com/renix-codex/posts/internal/posts"
	http "github.com/renix-codex/posts/internal/server"
)

const startupIngestTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log, err := setup(true)
			if err != nil {
				return err
			}
			app, closeStore, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			if cfg.IngestOnStart {
				ingCtx, cancel := context.WithTimeout(ctx, startupIngestTimeout)
				if n, err := app.IngestOnce(ingCtx); err != nil {
					log.Error().Err(err).Msg("startup ingest failed")
				} else {
					log.Info().Int("count", n).Msg("ingested posts")
				}
				cancel()
			}

			log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
			return http.New(app, log).ListenAndServe(ctx, cfg.ListenAddr)
		},
	}
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Fetch every upstream post once and store it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(false)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), startupIngestTimeout)
			defer cancel()

			app, closeStore, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := app.IngestOnce(ctx)
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ingested %d posts\n", n)
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "get [--validate] [--] <post-id>",
		Short: "Fetch one post from the upstream API",
		Example: `  posts get 1
  posts get --validate -- -1   # "--" ends flags so a negative id is read as an argument`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			app, err := upstreamApp()
			if err != nil {
				return err
			}
			post, err := app.UpstreamPost(cmd.Context(), id, validate)
			if err != nil {
				return err
			}
			if post == nil {
				return printNotFound(cmd.OutOrStdout())
			}
			return printJSON(cmd.OutOrStdout(), post)
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "Reject ids below 1 without calling the API")
	return cmd
}

func newUserPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user-posts <user-id>",
		Short: "Fetch a user's posts from the upstream API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			app, err := upstreamApp()
			if err != nil {
				return err
			}
			items, err := app.UpstreamUserPosts(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if items == nil {
				return printNotFound(cmd.OutOrStdout())
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
}

// setup loads the config. The service logs to stdout; one-shot commands log
// to stderr so their stdout stays parseable.
func setup(service bool) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if service {
		return cfg, logger.New("posts", cfg.Debug), nil
	}
	return cfg, logger.NewWithWriter(os.Stderr, "posts", cfg.Debug), nil
}

func newPostsClient(cfg *config.Config, log zerolog.Logger) (*posts.Client, error) {
	return posts.New(
		posts.WithBaseURL(cfg.BaseURL),
		posts.WithHTTPTimeout(cfg.HTTPTimeout),
		posts.WithLogger(log),
		posts.WithDebugLogging(cfg.Debug),
	)
}

// buildApp wires config -> store -> client -> service -> API. The returned
// func closes the store.
func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*api.API, func(), error) {
	pg, err := store.New(ctx, cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("postgres init: %w", err)
	}
	client, err := newPostsClient(cfg, log)
	if err != nil {
		pg.Close()
		return nil, nil, err
	}
	svc := ingest.New(pg, ingest.NewHTTPCollector(client), cfg.SourceName, time.Now)
	return api.New(svc, client, pg), pg.Close, nil
}

// upstreamApp builds an API with only the live side wired; the lookup
// commands never touch Postgres.
func upstreamApp() (*api.API, error) {
	cfg, log, err := setup(false)
	if err != nil {
		return nil, err
	}
	client, err := newPostsClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return api.New(nil, client, nil), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printNotFound(w io.Writer) error {
	_, err := fmt.Fprintln(w, "not found")
	return err
}
