package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	ptext "github.com/jedib0t/go-pretty/v6/text"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/store"
)

const sampleWidth = 40

// renderStyles prints the style histogram, most prominent style first.
func renderStyles(w io.Writer, hist *layout.StyleHistogram) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Font", "Size", "Align", "Blocks", "First block"})
	for i, s := range hist.Keys {
		blocks := hist.Blocks[s]
		sample := ""
		if len(blocks) > 0 {
			sample = strings.ReplaceAll(blocks[0].Text(), "\n", " ")
		}
		t.AppendRow(table.Row{i + 1, s.Font, s.Size, s.Align, len(blocks), ptext.Trim(sample, sampleWidth)})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", countBlocks(hist), ""})
	t.Render()
}

func countBlocks(hist *layout.StyleHistogram) int {
	n := 0
	for _, s := range hist.Keys {
		n += hist.Count(s)
	}
	return n
}

// renderDocuments prints the stored documents.
func renderDocuments(w io.Writer, docs []store.DocumentInfo) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "no documents")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Created", "Blocks"})
	for _, d := range docs {
		t.AppendRow(table.Row{d.ID, d.Name, d.CreatedAt.Local().Format(time.DateTime), d.Blocks})
	}
	t.Render()
}
