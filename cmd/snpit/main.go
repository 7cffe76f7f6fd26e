package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"snpit/models"
	"snpit/services/catalog"
	"snpit/services/classification"
	"snpit/services/report"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const notAvailable = "N/A"

var (
	cfg models.Config

	inputs       []string
	threshold    float64
	ignoreFilter bool
	libraryDir   string
	rankings     bool
	concurrency  int
)

var rootCmd = &cobra.Command{
	Use:   "snpit",
	Short: "Identify the lineage of M. tuberculosis samples",
	Long: `Identify the lineage of M. tuberculosis samples from VCF or FASTA files.

Example usage:
	snpit --input sample.vcf.gz --input assembly.fa --threshold 10

Every diagnostic position of every lineage is compared against the sample and the
lineage sharing the highest percentage of diagnostic bases is reported, provided it
is above --threshold. One tab separated row is written per sample; samples without
a match are reported as N/A. --rankings appends the full per-lineage table.

Defaults come from the SNPIT_* environment variables.`,
	Args: cobra.ArbitraryArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		paths := append(append([]string{}, inputs...), args...)
		if len(paths) == 0 {
			return fmt.Errorf("no input given; use --input")
		}

		cfg.Library.Directory = libraryDir
		cat, err := catalog.Load(&cfg)
		if err != nil {
			return err
		}

		opts := classification.Options{Threshold: threshold, IgnoreFilter: ignoreFilter}
		outcomes, err := classification.ClassifyFiles(cmd.Context(), cat, paths, opts, concurrency)
		if err != nil {
			return err
		}

		return writeOutcomes(cmd.OutOrStdout(), outcomes, rankings)
	},
}

func init() {
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	rootCmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "VCF or FASTA sample file (optionally .gz/.bz2); repeatable")
	rootCmd.Flags().Float64VarP(&threshold, "threshold", "t", cfg.Classification.Threshold, "Minimum percentage a lineage must exceed to be reported")
	rootCmd.Flags().BoolVarP(&ignoreFilter, "ignore-filter", "", cfg.Classification.IgnoreFilter, "Use VCF records whatever their FILTER value")
	rootCmd.Flags().StringVarP(&libraryDir, "library-dir", "l", cfg.Library.Directory, "Directory holding the lineage catalog, panels and reference")
	rootCmd.Flags().BoolVarP(&rankings, "rankings", "", false, "Also write the per-lineage ranking of every sample")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", cfg.Api.ClassificationConcurrencyLevel, "Number of samples classified at once")

	rootCmd.Flags().Lookup("ignore-filter").NoOptDefVal = "true"
	rootCmd.Flags().Lookup("rankings").NoOptDefVal = "true"

	rootCmd.Flags().SortFlags = false
}

// writeOutcomes prints one row per sample in input order. A failed sample
// is logged and the command returns an error once every row is written.
func writeOutcomes(w io.Writer, outcomes []classification.Outcome, withRankings bool) error {
	failed := 0

	fmt.Fprintln(w, strings.Join([]string{"sample", "species", "lineage", "sublineage", "name", "percentage"}, "\t"))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			log.Errorf("%s: %v", outcome.Path, outcome.Err)
			failed++
			continue
		}
		fmt.Fprintln(w, strings.Join(resultRow(sampleName(outcome.Path), outcome.Result), "\t"))
	}

	if withRankings {
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				continue
			}
			fmt.Fprintln(w)
			if err := report.WriteRankings(w, sampleName(outcome.Path), outcome.Result.Rankings); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sample(s) could not be classified", failed, len(outcomes))
	}
	return nil
}

func resultRow(sample string, result *models.Result) []string {
	if !result.Known {
		return []string{sample, notAvailable, notAvailable, notAvailable, notAvailable, notAvailable}
	}

	sublineage := result.Sublineage
	if sublineage == "" {
		sublineage = notAvailable
	}
	return []string{
		sample,
		result.Species,
		result.Lineage,
		sublineage,
		result.Name,
		strconv.FormatFloat(result.Percentage, 'f', 2, 64),
	}
}

// sampleName strips the directory and every suffix, e.g.
// /data/ERR123.vcf.gz -> ERR123.
func sampleName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
