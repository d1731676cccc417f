package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/stepshape/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var noCache bool

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Group the steps of one type by structural shape",
	Long: `Analyze walks every JSON document under the folder and:
- Drops documents whose algorithm category is excluded
- Extracts every step of the given type from Algorithm.body, at any depth
- Replaces leaf values with their kind ("string", "number", "boolean", "null")
- Groups equal shapes and records which algorithms each appears in

Documents that cannot be read or parsed are reported and skipped.

Example:
  stepshape analyze -f ./algorithms -s LetStep -o let.json
  stepshape analyze -f ./algorithms -s IfStep -e sdo -e "builtin method"
  stepshape analyze -f ./algorithms -s ReturnStep -o - --workers 8`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.StringP("folder", "f", "", "folder containing the algorithm documents")
	flags.StringP("step", "s", "", "step type name to extract")
	flags.StringP("output", "o", "occurrences.json", "output JSON path (- for stdout)")
	flags.StringSliceP("exclude", "e", nil, "algorithm categories to exclude (see 'stepshape categories')")
	flags.String("pattern", "**/*.json", "glob selecting documents below the folder")
	flags.Int("workers", 0, "number of concurrent document readers (default: number of CPUs)")
	flags.BoolVar(&noCache, "no-cache", false, "read every document from disk, even if already probed by the filter")

	_ = viper.BindPFlag("analysis.folder", flags.Lookup("folder"))
	_ = viper.BindPFlag("analysis.step", flags.Lookup("step"))
	_ = viper.BindPFlag("analysis.exclude", flags.Lookup("exclude"))
	_ = viper.BindPFlag("analysis.pattern", flags.Lookup("pattern"))
	_ = viper.BindPFlag("output.path", flags.Lookup("output"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cfg.Analysis.Folder == "" {
		return fmt.Errorf("no folder given: use --folder or set analysis.folder")
	}

	log := logger
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Folder:   %s\n", cfg.Analysis.Folder)
		fmt.Fprintf(os.Stderr, "Step:     %s\n", cfg.Analysis.Step)
		fmt.Fprintf(os.Stderr, "Exclude:  %v\n", cfg.Analysis.Exclude)
		fmt.Fprintf(os.Stderr, "Workers:  %d\n", cfg.Concurrency.Workers)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, log)

	result, err := p.Analyze(cmd.Context(), pipeline.RequestFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cmd.OutOrStdout())
	if err := renderer.RenderJSON(result.Occurrences, cfg.Output.Path); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	s := result.Stats
	fmt.Fprintf(os.Stderr, "✓ Scanned %d documents (%d after filtering)\n", s.Discovered, s.Retained)
	if s.Failed > 0 {
		fmt.Fprintf(os.Stderr, "✗ Skipped %d documents that could not be read\n", s.Failed)
	}
	fmt.Fprintf(os.Stderr, "✓ Found %d %s steps in %d distinct shapes\n", s.Steps, cfg.Analysis.Step, s.Shapes)
	if cfg.Output.Path != "-" {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", cfg.Output.Path)
	}

	return nil
}
