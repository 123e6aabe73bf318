// Package cli implements the outline command line interface.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/outline"
	"github.com/tsawler/outline/export"
	"github.com/tsawler/outline/store"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	pdfPath    string
	password   string
	verbose    bool
	keep       bool
	flat       bool
}

// app carries what the subcommands need once the persistent flags are parsed.
type app struct {
	flags globalFlags
	log   *zap.Logger
}

// extractor builds an Extractor for the event stream at path.
func (a *app) extractor(path string) (*outline.Extractor, error) {
	config, err := LoadConfig(a.flags.configPath)
	if err != nil {
		return nil, err
	}
	ext := outline.Open(path).WithConfig(config).WithLogger(a.log)
	if a.flags.pdfPath != "" {
		ext = ext.RequirePermission(a.flags.pdfPath, a.flags.password)
	}
	if a.flags.keep {
		ext = ext.KeepHeadersAndFooters()
	}
	if a.flags.flat {
		ext = ext.Flat()
	}
	return ext, nil
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand(version string) *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "outline",
		Short:         "Reconstruct the heading structure of a document",
		Long:          "outline turns the positioned text runs of a document's pages into paragraphs, numbered items, formulas and a heading hierarchy.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := NewLogger(a.flags.verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "analyzer config file (yaml, toml or json)")
	pf.StringVar(&a.flags.pdfPath, "pdf", "", "source PDF whose extraction permission must be granted")
	pf.StringVar(&a.flags.password, "password", "", "user password of the source PDF")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log pipeline stages")
	pf.BoolVar(&a.flags.keep, "keep-furniture", false, "keep repeated headers and footers")
	pf.BoolVar(&a.flags.flat, "flat", false, "skip hierarchy construction")

	root.AddCommand(
		newTreeCommand(a),
		newExportCommand(a),
		newStylesCommand(a),
		newSaveCommand(a),
		newListCommand(a),
		newShowCommand(a),
	)
	return root
}

func newTreeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <events.jsonl>",
		Short: "Print the heading tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := a.extractor(args[0])
			if err != nil {
				return err
			}
			tree, err := ext.Outline()
			if err != nil {
				return err
			}
			if tree != "" {
				fmt.Fprintln(cmd.OutOrStdout(), tree)
			}
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <events.jsonl>",
		Short: "Export the structured document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			ext, err := a.extractor(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer file.Close()
				w = file
			}
			return ext.Export(w, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "outline", "output format: outline, json, yaml, html or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newStylesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "styles <events.jsonl>",
		Short: "Show the style histogram used to rank headings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := a.extractor(args[0])
			if err != nil {
				return err
			}
			doc, err := ext.Document()
			if err != nil {
				return err
			}
			if doc.Histogram == nil {
				doc.FillStylesHist()
			}
			renderStyles(cmd.OutOrStdout(), doc.Histogram)
			return nil
		},
	}
}

func addDBFlag(cmd *cobra.Command, dsn *string) {
	cmd.Flags().StringVar(dsn, "db", "outline.db", "SQLite database file")
}

func newSaveCommand(a *app) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "save <events.jsonl>",
		Short: "Analyze a document and store its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := a.extractor(args[0])
			if err != nil {
				return err
			}
			doc, err := ext.Document()
			if err != nil {
				return err
			}
			s, err := store.Open(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer s.Close()
			id, err := s.SaveDocument(cmd.Context(), doc.Name, export.FromDocument(doc))
			if err != nil {
				return err
			}
			a.log.Info("saved document", zap.String("name", doc.Name), zap.Int64("id", id))
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	addDBFlag(cmd, &dsn)
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer s.Close()
			docs, err := s.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			renderDocuments(cmd.OutOrStdout(), docs)
			return nil
		},
	}
	addDBFlag(cmd, &dsn)
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	var dsn, format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Export a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid document id %q", args[0])
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := store.Open(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer s.Close()

			docs, err := s.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			title := ""
			for _, d := range docs {
				if d.ID == id {
					title = d.Name
				}
			}
			records, err := s.LoadDocument(cmd.Context(), id)
			if err != nil {
				return err
			}
			config := export.DefaultExportConfig()
			config.Format = f
			config.Title = title
			return export.NewExporter(config).Export(cmd.OutOrStdout(), records)
		},
	}
	addDBFlag(cmd, &dsn)
	cmd.Flags().StringVarP(&format, "format", "f", "outline", "output format: outline, json, yaml, html or markdown")
	return cmd
}
