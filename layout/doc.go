// Package layout rebuilds visual lines from positioned text runs and infers
// paragraph styling for them.
//
// # Lines
//
// PDF coordinates grow upwards, so the top of a page has the largest Y.
// [LineBuilder] groups runs by quantised Y and returns a [LineMap] whose
// lines run top to bottom:
//
//	lines := layout.NewLineBuilder().Build(page.Runs)
//	for _, line := range lines.Lines() {
//	    fmt.Println(line.Y, line.Text())
//	}
//
// Runs inside a [Line] are stored in extraction order and sorted left to
// right only when read through [Line.Runs].
//
// # Style inference
//
// A [StyleInferencer] turns a prose line into a [Style]: alignment from the
// first run's X relative to the page centre, a heading level from the
// dominant font size, and bold/italic/underline from the dominant run's font
// name. [FontNameInferencer] is the default implementation; callers with
// better font metadata can supply their own.
package layout
