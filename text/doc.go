// Package text turns the output of a page parser into a layout.Document.
//
// A parser reports positioned character runs, line breaks and page ends.
// The [Builder] accumulates them:
//
//	b := text.NewBuilder("Annual Report")
//	b.AddRun(text.Run{Text: "Introduction", Font: "Times-Bold", Size: 14, Page: 1, Boxes: boxes})
//	b.LineBreak()
//	b.PageEnd()
//	doc := b.Document()
//
// Runs with a zero font size are dropped and every line is trimmed. A line
// joins the current block when [layout.Continues] accepts it; otherwise the
// block is sealed and a new one started. A page end seals the block and
// records the page boundary.
//
// # Event Streams
//
// Parsers running out of process can record their output as JSON lines
// ([Event]), read back with [DecodeEvents] and fed through [Replay].
package text
