// Package model provides the intermediate representation (IR) shared by every
// stage of the PDF to Word pipeline.
//
// Extraction produces [TextRun] values. Assembly turns positioned runs into
// an ordered sequence of [Node] values that the serializers consume.
//
// # Document Structure
//
// A [Document] holds metadata and a flat node sequence. Pages are not kept as
// separate containers; a [PageBreak] node separates the content of one source
// page from the next:
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "Jane Doe - Resume"
//	doc.Append(&model.Paragraph{Runs: []model.StyledText{{Text: "Experience"}}})
//
// # Nodes
//
// All content implements the [Node] interface. The concrete types are:
//
//   - [Paragraph] - one line of prose with alignment and optional heading level
//   - [Table] - rows of cell text with the column boundaries they came from
//   - [PageBreak] - the boundary between two source pages
//
// # Runs
//
// [TextRun] is a positioned span of text as read from a PDF content stream.
// [StyledText] is the formatted text a [Paragraph] carries into the output.
package model
