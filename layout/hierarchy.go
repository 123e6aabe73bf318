package layout

import (
	"strings"

	"github.com/tsawler/outline/model"
)

// headingNode is a candidate tree node. Candidates are built without touching
// Block.Sons so a rejected grouping needs no rollback.
type headingNode struct {
	block *Block
	sons  []headingNode
}

func leaves(flat []*Block) []headingNode {
	nodes := make([]headingNode, len(flat))
	for i, b := range flat {
		nodes[i] = headingNode{block: b}
	}
	return nodes
}

func skipsHeading(a model.Align) bool {
	return a == model.AlignUnknown || a == model.AlignRight || a == model.AlignMultiple
}

// partition nests flat, a contiguous run of Document.Blocks, under the most
// prominent style that splits it into at least two non-empty sections.
func (h *StyleHistogram) partition(flat []*Block) []headingNode {
	if len(flat) == 0 {
		return nil
	}
	base := flat[0].seq
	for _, key := range h.Keys {
		if skipsHeading(key.Align) {
			continue
		}
		var idxs []int
		hasFormula := false
		for _, b := range h.Blocks[key] {
			if pos := b.seq - base; pos >= 0 && pos < len(flat) {
				idxs = append(idxs, pos)
			}
			// Explicitly numbered text defeats style-based grouping.
			if b.Type.Kind == KindNumberedLabel && !strings.Contains(b.Type.Label, SectionMarker) {
				return leaves(flat)
			}
			if b.Type.Kind == KindFormula {
				hasFormula = true
			}
		}
		if len(idxs) < 2 || hasFormula {
			continue
		}

		res := h.partition(flat[:idxs[0]])
		for i, idx := range idxs {
			end := len(flat)
			if i+1 < len(idxs) {
				end = idxs[i+1]
			}
			res = append(res, headingNode{block: flat[idx], sons: h.partition(flat[idx+1 : end])})
		}
		withSons := 0
		for _, n := range res {
			if len(n.sons) > 0 {
				withSons++
			}
		}
		if withSons > 1 {
			return res
		}
	}
	return leaves(flat)
}

func applyNodes(nodes []headingNode) []*Block {
	if len(nodes) == 0 {
		return nil
	}
	blocks := make([]*Block, len(nodes))
	for i, n := range nodes {
		n.block.Sons = applyNodes(n.sons)
		blocks[i] = n.block
	}
	return blocks
}

// FillHierarchy arranges the blocks into a heading forest. Builds the style
// histogram first when it is missing.
func (d *Document) FillHierarchy() {
	if d.Histogram == nil {
		d.FillStylesHist()
	}
	for _, b := range d.Blocks {
		b.Sons = nil
	}
	d.Hierarchy = applyNodes(d.Histogram.partition(d.Blocks))
}
