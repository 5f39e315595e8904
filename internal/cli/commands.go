package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodeVantage/codevantage-backend/internal/bootstrap"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/loader"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/repository"
)

type filterResult struct {
	Filters  domain.FilterState     `json:"filters" yaml:"filters"`
	Count    int                    `json:"count" yaml:"count"`
	Projects []domain.ProjectRecord `json:"projects" yaml:"projects"`
}

func (r *filterResult) ToData() any { return r }

func (r *filterResult) ToText(w io.Writer) {
	if r.Count == 0 {
		fmt.Fprintln(w, domain.EmptyResultMessage)
		return
	}
	for _, p := range r.Projects {
		fmt.Fprintf(w, "%-10s %-5s %-7s %s\n", p.ID, p.Domain, p.Language, p.Title)
	}
	fmt.Fprintf(w, "\n%d project(s) for domain=%s language=%s\n", r.Count, r.Filters.Domain, r.Filters.Language)
}

func newFilterCmd() *cobra.Command {
	var file, dom, lang, format string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the projects shown for a domain/language selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadRecords(file)
			if err != nil {
				return err
			}
			state := domain.FilterState{Domain: dom, Language: lang}.Normalize()
			projects := domain.FilterCatalog(records, state)
			return writeOutput(cmd.OutOrStdout(), &filterResult{
				Filters:  state,
				Count:    len(projects),
				Projects: projects,
			}, format)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Catalog file (defaults to the bundled catalog)")
	cmd.Flags().StringVar(&dom, "domain", domain.Wildcard, "Domain to select")
	cmd.Flags().StringVar(&lang, "language", domain.Wildcard, "Language to select")
	setupOutputFlags(cmd, &format)
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file for missing fields and duplicate ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d project(s) OK\n", args[0], len(records))
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file, dsn string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog_projects table with the contents of a catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn is required")
			}
			records, err := loadRecords(file)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: dsn})
			if err != nil {
				return err
			}
			defer pool.Close()

			src := repository.NewPostgresSource(pool)
			if err := src.EnsureSchema(ctx); err != nil {
				return err
			}
			n, err := src.Seed(ctx, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d project(s)\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Catalog file (defaults to the bundled catalog)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres connection string")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout")
	return cmd
}

type optionsResult struct {
	opts domain.FilterOptions
}

func (r *optionsResult) ToData() any { return r.opts }

func (r *optionsResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "domains:   %s\n", strings.Join(r.opts.Domains, ", "))
	fmt.Fprintf(w, "languages: %s\n", strings.Join(r.opts.Languages, ", "))
}

func newOptionsCmd() *cobra.Command {
	var file, format string
	var derive bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the values offered by the domain and language selectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := domain.DefaultFilterOptions()
			if derive {
				records, err := loadRecords(file)
				if err != nil {
					return err
				}
				opts = domain.DeriveOptions(records)
			}
			return writeOutput(cmd.OutOrStdout(), &optionsResult{opts: opts}, format)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Catalog file used with --derive")
	cmd.Flags().BoolVar(&derive, "derive", false, "Derive options from the catalog data")
	setupOutputFlags(cmd, &format)
	return cmd
}
