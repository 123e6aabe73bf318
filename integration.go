// integration.go provides one-call helpers over the Extractor for callers
// that do not need the fluent configuration.
package outline

import (
	"github.com/tsawler/outline/layout"
)

// AnalyzeFile reads an event stream and runs the full pipeline with the
// default configuration.
//
// Example:
//
//	result, err := outline.AnalyzeFile("report.events.jsonl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range result.Document.Hierarchy {
//	    fmt.Println(b.Text())
//	}
func AnalyzeFile(path string) (*layout.AnalysisResult, error) {
	return AnalyzeFileWithConfig(path, layout.DefaultAnalyzerConfig())
}

// AnalyzeFileWithConfig reads an event stream and runs the pipeline with a
// custom configuration.
func AnalyzeFileWithConfig(path string, config layout.AnalyzerConfig) (*layout.AnalysisResult, error) {
	return Open(path).WithConfig(config).Analyze()
}
