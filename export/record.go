package export

import (
	"github.com/tsawler/outline/layout"
)

// Record is the export form of a block: its text, its type and its sons.
type Record struct {
	Text      string   `json:"text" yaml:"text"`
	Type      string   `json:"type" yaml:"type"`
	Alignment string   `json:"alignment" yaml:"alignment"`
	SubBlocks []Record `json:"sub_blocks,omitempty" yaml:"sub_blocks,omitempty"`
}

// IsHeading reports whether the record has sons
func (r Record) IsHeading() bool {
	return len(r.SubBlocks) > 0
}

// FromDocument converts the document's hierarchy into records. A document
// whose hierarchy has not been built exports its flat block list.
func FromDocument(doc *layout.Document) []Record {
	if len(doc.Hierarchy) > 0 {
		return FromBlocks(doc.Hierarchy)
	}
	return FromBlocks(doc.Blocks)
}

// FromBlocks converts blocks and their sons into records.
func FromBlocks(blocks []*layout.Block) []Record {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Record, len(blocks))
	for i, b := range blocks {
		out[i] = Record{
			Text:      b.Text(),
			Type:      b.Type.Kind.String(),
			Alignment: b.Alignment.String(),
			SubBlocks: FromBlocks(b.Sons),
		}
	}
	return out
}

// Count returns the number of records in the tree.
func Count(records []Record) int {
	n := len(records)
	for _, r := range records {
		n += Count(r.SubBlocks)
	}
	return n
}
