package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao"
	"github.com/kailas-cloud/saucenao/internal/config"
	"github.com/kailas-cloud/saucenao/internal/version"
)

// flags override config values for a single run.
type flags struct {
	minSimilarity float64
	priority      []int
	resolve       bool
}

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:     "saucenao",
		Short:   "Reverse image search on SauceNAO",
		Version: version.Long(),
		// Errors are printed by main with the exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().Float64Var(&f.minSimilarity, "min-similarity", cfg.Ranking.MinSimilarity,
		"drop matches at or below this similarity")
	rootCmd.PersistentFlags().IntSliceVar(&f.priority, "priority", cfg.Ranking.Priority,
		"index ids to move to the front, most preferred first")
	rootCmd.PersistentFlags().BoolVar(&f.resolve, "resolve", false,
		"resolve AniList/MyAnimeList/Kitsu ids for anime matches")

	rootCmd.AddCommand(urlCmd(cfg, f, logger))
	rootCmd.AddCommand(fileCmd(cfg, f, logger))
	rootCmd.AddCommand(testCmd(cfg, f, logger))
	return rootCmd
}

func urlCmd(cfg *config.Config, f *flags, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "url <image-url>",
		Short:   "Look up a remote image",
		Example: `  saucenao url https://example.com/image.png --priority 5,9`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd, logger)
			return withClient(cfg, f, logger, func(c *saucenao.Client) error {
				res, err := c.FromURL(ctx, args[0])
				if err != nil {
					return err
				}
				return printResults(ctx, cmd.OutOrStdout(), res, f.resolve)
			})
		},
	}
}

func fileCmd(cfg *config.Config, f *flags, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "file <path>",
		Short:   "Upload a local image",
		Example: `  saucenao file ./screenshot.png --min-similarity 70`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd, logger)
			return withClient(cfg, f, logger, func(c *saucenao.Client) error {
				res, err := c.FromFile(ctx, args[0])
				if err != nil {
					return err
				}
				return printResults(ctx, cmd.OutOrStdout(), res, f.resolve)
			})
		},
	}
}

func testCmd(cfg *config.Config, f *flags, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check the API key and remaining quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd, logger)
			return withClient(cfg, f, logger, func(c *saucenao.Client) error {
				d := c.Test(ctx)
				printDiagnostic(cmd.OutOrStdout(), d)
				return d.Err
			})
		},
	}
}

// commandContext tags every log line of a run with the subcommand name.
func commandContext(cmd *cobra.Command, logger *zap.Logger) context.Context {
	return saucenao.ContextWithLogger(cmd.Context(), logger.With(zap.String("command", cmd.Name())))
}

func withClient(cfg *config.Config, f *flags, logger *zap.Logger, fn func(*saucenao.Client) error) error {
	c, err := saucenao.New(clientOptions(cfg, f, logger)...)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

func clientOptions(cfg *config.Config, f *flags, logger *zap.Logger) []saucenao.Option {
	sn := cfg.SauceNAO
	opts := []saucenao.Option{
		saucenao.WithAPIKey(sn.APIKey),
		saucenao.WithBaseURL(sn.BaseURL),
		saucenao.WithDBMask(sn.DBMask),
		saucenao.WithDBMaskDisable(sn.DBMaskDisable),
		saucenao.WithResultsLimit(sn.ResultsLimit),
		saucenao.WithTimeout(time.Duration(sn.TimeoutSec) * time.Second),
		saucenao.WithMinSimilarity(f.minSimilarity),
		saucenao.WithPriority(f.priority...),
		saucenao.WithRelationsURL(cfg.Relations.BaseURL),
		saucenao.WithLogger(logger),
	}
	if sn.DB != nil {
		opts = append(opts, saucenao.WithDB(*sn.DB))
	}
	if cfg.Ranking.Tolerance != nil {
		opts = append(opts, saucenao.WithPriorityTolerance(*cfg.Ranking.Tolerance))
	}
	if sn.TestMode {
		opts = append(opts, saucenao.WithTestMode())
	}
	if sn.StrictMode {
		opts = append(opts, saucenao.WithStrictMode())
	}
	if cfg.Cache.Addr != "" {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		opts = append(opts, saucenao.WithRelationCache(cfg.Cache.Addr, cfg.Cache.Password, ttl))
	}
	return opts
}

func printResults(ctx context.Context, w io.Writer, res *saucenao.Results, resolve bool) error {
	acc := res.Account()
	fmt.Fprintf(w, "%d result(s), quota %d/%d short, %d/%d daily\n",
		res.Len(), acc.ShortRemaining, acc.ShortLimit, acc.LongRemaining, acc.LongLimit)

	for i, s := range res.All() {
		fmt.Fprintf(w, "\n#%d %5.2f%% [%s] %s\n", i+1, s.Similarity(), s.Category(), s.Index())
		if s.Title() != "" {
			fmt.Fprintf(w, "   title:  %s\n", s.Title())
		}
		if s.AuthorName() != "" {
			fmt.Fprintf(w, "   author: %s\n", s.AuthorName())
		}
		if s.SourceURL() != "" {
			fmt.Fprintf(w, "   url:    %s\n", s.SourceURL())
		}
		switch v := s.(type) {
		case *saucenao.Booru:
			if chars := v.Characters(); len(chars) > 0 {
				fmt.Fprintf(w, "   chars:  %s\n", strings.Join(chars, ", "))
			}
		case *saucenao.Anime:
			fmt.Fprintf(w, "   ep:     %s %s\n", v.Episode(), v.Timestamp())
			if resolve {
				printRelations(ctx, w, v)
			}
		case *saucenao.Video:
			fmt.Fprintf(w, "   ep:     %s %s\n", v.Episode(), v.Timestamp())
		case *saucenao.Manga:
			fmt.Fprintf(w, "   part:   %s\n", v.Chapter())
		}
	}
	return nil
}

func printRelations(ctx context.Context, w io.Writer, a *saucenao.Anime) {
	a.LoadIDs(ctx)
	for _, link := range []string{a.AniDBURL(), a.AniListURL(), a.MALURL(), a.KitsuURL()} {
		if link != "" {
			fmt.Fprintf(w, "   link:   %s\n", link)
		}
	}
}

func printDiagnostic(w io.Writer, d saucenao.Diagnostic) {
	status := "ok"
	if !d.Success {
		status = "failed: " + d.Err.Error()
	}
	fmt.Fprintf(w, "status:  %s\n", status)
	fmt.Fprintf(w, "account: %s (user %s)\n", d.Account.Tier(), d.Account.UserID)
	fmt.Fprintf(w, "quota:   %d/%d short, %d/%d daily\n",
		d.Account.ShortRemaining, d.Account.ShortLimit, d.Account.LongRemaining, d.Account.LongLimit)
}
