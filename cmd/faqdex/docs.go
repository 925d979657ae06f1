package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
	docrepo "github.com/kailas-cloud/faqdex/internal/repository/document"
	"github.com/kailas-cloud/faqdex/internal/sample"
	chitransport "github.com/kailas-cloud/faqdex/internal/transport/chi"
)

func newDocsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Inspect and manage the FAQ document collection",
	}
	cmd.AddCommand(newDocsListCmd(a), newDocsSeedCmd(a))
	return cmd
}

func newDocsListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents from the configured source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.sync()

			src, store, err := buildSource(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			set, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), chitransport.NewDocumentListResponse(set))
			}
			return printDocuments(cmd, set)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func printDocuments(cmd *cobra.Command, set domdoc.Set) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS")
	for _, d := range set.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID(), d.Title(), strings.Join(d.Tags(), ","))
	}
	fmt.Fprintf(tw, "\n%d documents\n", set.Len())
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func newDocsSeedCmd(a *app) *cobra.Command {
	var (
		file string
		key  string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a JSON document file (or the built-in sample) into Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.sync()
			ctx := cmd.Context()

			var set domdoc.Set
			var err error
			if file != "" {
				set, err = docrepo.NewFile(file).Load(ctx)
			} else {
				set, err = docrepo.Parse(sample.FAQ())
			}
			if err != nil {
				return fmt.Errorf("read documents: %w", err)
			}

			store, err := openStore(ctx, a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if key == "" {
				key = a.cfg.Documents.RedisKey
			}
			target := docrepo.NewRedis(store, key)
			if err := target.Seed(ctx, set); err != nil {
				return fmt.Errorf("seed documents: %w", err)
			}

			a.logger.Info("Documents seeded",
				zap.String("key", target.Key()),
				zap.Int("documents", set.Len()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents into %s\n", set.Len(), target.Key())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON document file (default: built-in sample)")
	cmd.Flags().StringVar(&key, "key", "", "Redis key (default: documents.redis_key)")
	return cmd
}
