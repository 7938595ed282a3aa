package preflight

import (
	"path/filepath"

	"gifmaker/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check relevant to a run over inputDir publishing to
// outputPath. The log directory is only checked when configured.
func RunAll(cfg *config.Config, inputDir, outputPath string) []Result {
	results := []Result{
		CheckInputDirectory("Input directory", inputDir),
		CheckDirectoryAccess("Output directory", filepath.Dir(outputPath)),
		CheckOutputTarget("Output file", outputPath),
	}
	if cfg != nil && cfg.Logging.Dir != "" {
		results = append(results, CheckLogDirectory("Log directory", cfg.Logging.Dir))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
