package layout

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// SectionMarker distinguishes explicit section labels ("§ 3") from incidental
// label-like text. Labels containing it are never demoted to plain text and
// never block style-based heading detection.
const SectionMarker = "§"

var (
	// Up to three short words (or abbreviations) right before a digit, such as
	// "Chapter 3", "Fig. 2" or "§ 4". The atomic group stops a word from being
	// split to satisfy the repetition.
	labelPrefixRe = regexp2.MustCompile(
		`^\s*((?:\p{Z}?(?>[\p{L}\p{M}.§]{1,20})){1,3})\s*\d`, regexp2.None)

	// A numeral optionally followed by more numerals separated by one
	// repeated delimiter: "3", "3.", "3.2.1", "2-4".
	numeralChainRe = regexp2.MustCompile(
		`^\s*(\d+(?:(?<delim>[\p{P}\p{S}]+)(?:\d+(?:\k<delim>\d+)*)?)?)`, regexp2.None)
)

// FillType classifies the block as Numbered or NumberedLabel when its first
// line starts with a numeral chain, and PlainText otherwise. Group-level
// validation and formula detection happen in Document.FillBlocksTypes.
func (b *Block) FillType() {
	b.Type = BlockType{Kind: KindPlainText}
	first := b.FirstLine()
	if first == nil {
		return
	}

	search := first.Chars
	if m, _ := labelPrefixRe.FindRunesMatch(search); m != nil {
		g := m.GroupByNumber(1)
		b.Type.Label = g.String()
		b.Type.HasLabel = true
		search = search[g.Index+g.Length:]
	}

	m, _ := numeralChainRe.FindRunesMatch(search)
	if m == nil {
		b.Type.Label = ""
		b.Type.HasLabel = false
		return
	}
	chain := m.GroupByNumber(1).String()
	if d := m.GroupByName("delim"); d != nil && len(d.Captures) > 0 {
		b.Type.Delim = d.String()
	}
	b.Type.Number = splitChain(chain, b.Type.Delim)
	if b.Type.HasLabel {
		b.Type.Kind = KindNumberedLabel
	} else {
		b.Type.Kind = KindNumbered
	}
}

func splitChain(chain, delim string) []string {
	if delim == "" {
		return []string{chain}
	}
	var parts []string
	for _, p := range strings.Split(chain, delim) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// IsNumbered reports whether the block was classified as any numbered kind
func (b *Block) IsNumbered() bool {
	return b.Type.Kind == KindNumbered || b.Type.Kind == KindNumberedLabel
}

type labelKey struct {
	label, delim string
}

// FillBlocksTypes classifies every block. Numbered blocks are grouped by
// label and delimiter; a group survives only if its members share a kind and
// chain length and their chains increase strictly in every component. Failing
// groups become plain text, or plain Numbered when the label carries the
// section marker. Blocks whose lines mostly look like formulas become Formula.
func (d *Document) FillBlocksTypes() {
	groups := make(map[labelKey][]*Block)
	var order []labelKey
	for _, b := range d.Blocks {
		b.FillType()
		if !b.IsNumbered() {
			continue
		}
		key := labelKey{label: b.Type.Label, delim: b.Type.Delim}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], b)
	}

	for _, key := range order {
		group := groups[key]
		marked := strings.Contains(key.label, SectionMarker)
		if !marked && isIncreasingSequence(group) {
			continue
		}
		for _, b := range group {
			if marked {
				b.Type.Kind = KindNumbered
			} else {
				b.Type.Kind = KindPlainText
			}
		}
	}

	for _, b := range d.Blocks {
		if b.LooksLikeFormula() {
			b.Type.Kind = KindFormula
		}
	}
}

func isIncreasingSequence(group []*Block) bool {
	for i := 1; i < len(group); i++ {
		prev, cur := group[i-1].Type, group[i].Type
		if prev.Kind != cur.Kind || len(prev.Number) != len(cur.Number) {
			return false
		}
	}
	for i := 1; i < len(group); i++ {
		prev, cur := group[i-1].Type.Number, group[i].Type.Number
		for k := range prev {
			if compareNumeric(prev[k], cur[k]) >= 0 {
				return false
			}
		}
	}
	return true
}
