// Package analysis summarizes Monte Carlo stability results.
//
//   - [Summarize]: descriptive statistics of a sample
//   - [SummarizeResult]: per-column summaries of a run
//   - [Histogram]: equal-width bin counts
//
// # Example
//
//	rep, err := analysis.SummarizeResult(res)
//	if err == nil {
//	    fmt.Println(rep.R0.Mean, rep.Classes[epidemic.StableFocus])
//	}
package analysis
