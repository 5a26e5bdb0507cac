// Package tables recovers tables from lines of positioned text.
//
// PDFs carry no table markup, only coordinates, so detection is heuristic.
// [Detector] slides a window of consecutive lines down a page and looks for
// X positions that every line in the window shares:
//
//  1. Each run's X is rounded to a bucket (10 points by default).
//  2. A window qualifies when its lines share at least two positions, where
//     two positions match if they are less than 20 points apart.
//  3. Consecutive qualifying windows merge into one [Candidate].
//  4. A candidate covering at least three lines is kept, and scanning resumes
//     after its last line.
//
// # Configuration
//
// Every threshold is a field of [Config]:
//
//	config := tables.DefaultConfig()
//	config.MatchTolerance = 12
//	detector, err := tables.NewDetectorWithConfig(config)
//
// # Cells
//
// [Candidate.Cells] places each run in the column whose boundary is nearest,
// or in the interval between boundaries when no boundary is close enough.
//
// Detection never fails: lines that do not form a table stay prose.
package tables
