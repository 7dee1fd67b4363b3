package main

import (
	"fmt"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/config"
	"github.com/terra-clan/ia-booster/internal/models"
)

var (
	catalogFile    string
	catalogLimit   int
	catalogShuffle bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [domain]",
	Short: "List catalog categories or the tools of a domain",
	Long: `Without argument, lists the catalog categories with their tool counts.
With a domain name, prints up to --limit tools for that domain.

Example:
  ia-booster catalog
  ia-booster catalog "Service Client" --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFile, "file", "", "catalog file (defaults to CATALOG_FILE)")
	catalogCmd.Flags().IntVarP(&catalogLimit, "limit", "n", 3, "maximum number of tools for a domain")
	catalogCmd.Flags().BoolVar(&catalogShuffle, "shuffle", false, "sample tools randomly")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	path := catalogFile
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.Catalog.File
	}
	cat := catalog.NewLoader(path).Load(cmd.Context())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	if len(args) == 0 {
		fmt.Fprintln(w, "CATEGORY\tDOMAIN\tTOOLS")
		for _, s := range cat.Summaries() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", s.Category, s.Domain, s.ToolsCount)
		}
		return nil
	}

	domain := args[0]
	if !models.IsDomain(domain) {
		return fmt.Errorf("unknown domain %q, expected one of %v", domain, models.Domains)
	}

	var rnd *rand.Rand
	if catalogShuffle {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	fmt.Fprintln(w, "NAME\tPRICE\tURL")
	for _, t := range cat.Lookup(domain, catalogLimit, rnd) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.Price, t.URL)
	}
	return nil
}
