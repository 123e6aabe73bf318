package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/outline/export"
	"github.com/tsawler/outline/text"
)

func run(e text.Event) []text.Event {
	return []text.Event{e, {Kind: text.KindLine}}
}

func runEvent(txt, font string, size float64, page int, x, y, charW float64) text.Event {
	n := float64(len([]rune(txt)))
	return text.Event{
		Kind: text.KindRun, Text: txt, Font: font, Size: size, Page: page,
		Bounds: &[4]float64{x, x + n*charW, y, y + 10},
	}
}

// writeSample writes a two-page stream, each page holding a bold heading,
// a justified paragraph and a "Page N" footer, to dir/sample.events.jsonl.
func writeSample(t *testing.T) string {
	t.Helper()
	var events []text.Event
	for i, p := range []struct{ heading, fill string }{{"Introduction", "a"}, {"Methods", "b"}} {
		page := i + 1
		events = append(events, run(runEvent(p.heading, "Times-Bold", 14, page, 72, 60, 12))...)
		for j, w := range []int{40, 40, 40, 25} {
			events = append(events, run(runEvent(strings.Repeat(p.fill, w), "Times-Roman", 10, page, 72, 100+float64(j)*12, 10))...)
		}
		events = append(events, run(runEvent(fmt.Sprintf("Page %d", page), "Times-Roman", 10, page, 300, 700, 10))...)
		events = append(events, text.Event{Kind: text.KindPage})
	}

	var buf bytes.Buffer
	if err := text.EncodeEvents(&buf, events); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sample.events.jsonl")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTreeCommand(t *testing.T) {
	out, err := execute(t, "tree", writeSample(t))
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}
	if want := "sample\n    Introduction\n    Methods\n"; out != want {
		t.Errorf("tree output = %q, want %q", out, want)
	}
}

func TestTreeCommand_Flags(t *testing.T) {
	sample := writeSample(t)

	out, err := execute(t, "--flat", "tree", sample)
	if err != nil {
		t.Fatalf("tree --flat error = %v", err)
	}
	if out != "sample\n" {
		t.Errorf("flat tree = %q", out)
	}

	if _, err := execute(t, "--pdf", filepath.Join(t.TempDir(), "missing.pdf"), "tree", sample); err == nil {
		t.Error("expected error for missing pdf")
	}
	if _, err := execute(t, "tree"); err == nil {
		t.Error("expected error without an input file")
	}
}

func TestExportCommand(t *testing.T) {
	sample := writeSample(t)

	out, err := execute(t, "export", "--format", "json", sample)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	var tree export.Tree
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("json.Unmarshal() error = %v\n%s", err, out)
	}
	if tree.Title != "sample" || len(tree.Blocks) != 2 {
		t.Errorf("tree = %+v", tree)
	}

	target := filepath.Join(t.TempDir(), "out.html")
	if _, err := execute(t, "export", "-f", "html", "-o", target, sample); err != nil {
		t.Fatalf("export to file error = %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<h2>Introduction</h2>") {
		t.Errorf("html output = %s", data)
	}

	if _, err := execute(t, "export", "--format", "pdf", sample); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestStylesCommand(t *testing.T) {
	out, err := execute(t, "styles", writeSample(t))
	if err != nil {
		t.Fatalf("styles error = %v", err)
	}
	for _, want := range []string{"FONT", "Times-Bold", "Times-Roman", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("styles output missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "Times-Bold") > strings.Index(out, "Times-Roman") {
		t.Error("heading style should be listed first")
	}
}

func TestStoreCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "outline.db")

	out, err := execute(t, "list", "--db", db)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if out != "no documents\n" {
		t.Errorf("empty list = %q", out)
	}

	out, err = execute(t, "save", "--db", db, writeSample(t))
	if err != nil {
		t.Fatalf("save error = %v", err)
	}
	if out != "1\n" {
		t.Errorf("save output = %q, want id 1", out)
	}

	out, err = execute(t, "list", "--db", db)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "sample") {
		t.Errorf("list output = %s", out)
	}

	out, err = execute(t, "show", "--db", db, "1")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if want := "sample\n    Introduction\n    Methods\n"; out != want {
		t.Errorf("show output = %q, want %q", out, want)
	}

	if _, err := execute(t, "show", "--db", db, "7"); err == nil {
		t.Error("expected error for unknown id")
	}
	if _, err := execute(t, "show", "--db", db, "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
