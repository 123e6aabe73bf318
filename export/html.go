package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textElement(a atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func heading(level int, text string) *html.Node {
	level = min(max(level, 1), len(headingAtoms))
	return textElement(headingAtoms[level-1], strings.ReplaceAll(text, "\n", " "))
}

// appendRecords renders headings as a section holding a heading element and
// the section's content, formulas and tables as preformatted text and
// everything else as paragraphs.
func appendRecords(parent *html.Node, records []Record, level int) {
	for _, r := range records {
		switch {
		case r.IsHeading():
			section := element(atom.Section)
			section.AppendChild(heading(level, r.Text))
			appendRecords(section, r.SubBlocks, level+1)
			parent.AppendChild(section)
		case r.Type == "formula" || r.Type == "table":
			parent.AppendChild(textElement(atom.Pre, r.Text, html.Attribute{Key: "class", Val: r.Type}))
		default:
			parent.AppendChild(textElement(atom.P, r.Text))
		}
	}
}

// body builds the <body> element: the title as the top heading, then the
// record tree one heading level below it.
func (e *Exporter) body(records []Record) *html.Node {
	body := element(atom.Body)
	level := 1
	if e.config.Title != "" {
		body.AppendChild(heading(1, e.config.Title))
		level = 2
	}
	appendRecords(body, records, level)
	return body
}

func (e *Exporter) exportHTML(w io.Writer, records []Record) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(textElement(atom.Title, e.config.Title))
	root.AppendChild(head)
	root.AppendChild(e.body(records))
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (e *Exporter) exportMarkdown(w io.Writer, records []Record) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.body(records)); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	md, err := conv.ConvertString(buf.String())
	if err != nil {
		return fmt.Errorf("failed to convert to markdown: %w", err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return nil
	}
	_, err = io.WriteString(w, md+"\n")
	return err
}
