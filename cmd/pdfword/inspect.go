package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/tsawler/pdfword"
	"github.com/tsawler/pdfword/docx"
	"github.com/tsawler/pdfword/format"
	"github.com/tsawler/pdfword/internal/logging"
	"github.com/tsawler/pdfword/model"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Dump the reconstructed document of a PDF or .docx",
	Long: `Inspect prints the node tree pdfword builds: metadata, then one entry per
paragraph, table and page break. A PDF goes through the conversion pipeline;
a .docx is read back as written, which shows what a conversion produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "yaml", "output format: yaml or json")
	inspectCmd.Flags().String("pages", "", "pages to inspect for a PDF, e.g. 1-2 (default: all)")

	rootCmd.AddCommand(inspectCmd)
}

// documentDump is the serialised form of a document.
type documentDump struct {
	Metadata  model.Metadata    `json:"metadata" yaml:"metadata"`
	PageCount int               `json:"page_count" yaml:"page_count"`
	Nodes     []nodeDump        `json:"nodes" yaml:"nodes"`
	Warnings  []pdfword.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type nodeDump struct {
	Kind      string             `json:"kind" yaml:"kind"`
	Heading   string             `json:"heading,omitempty" yaml:"heading,omitempty"`
	Alignment string             `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Runs      []model.StyledText `json:"runs,omitempty" yaml:"runs,omitempty"`
	Rows      [][]string         `json:"rows,omitempty" yaml:"rows,omitempty"`
}

func dumpDocument(doc *model.Document, warnings []pdfword.Warning) documentDump {
	d := documentDump{
		Metadata:  doc.Metadata,
		PageCount: doc.PageCount,
		Nodes:     make([]nodeDump, 0, len(doc.Nodes)),
		Warnings:  warnings,
	}
	for _, node := range doc.Nodes {
		n := nodeDump{Kind: node.Kind().String()}
		switch v := node.(type) {
		case *model.Paragraph:
			if v.Heading != model.HeadingNone {
				n.Heading = v.Heading.String()
			}
			n.Alignment = v.Alignment.String()
			n.Runs = v.Runs
		case *model.Table:
			n.Rows = v.Rows
		}
		d.Nodes = append(d.Nodes, n)
	}
	return d
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	outFormat, _ := cmd.Flags().GetString("format")
	if outFormat != "yaml" && outFormat != "json" {
		return fmt.Errorf("unknown output format %q", outFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	kind := format.DetectBytes(data)
	if kind == format.Unknown {
		kind = format.Detect(path)
	}

	var dump documentDump
	switch kind {
	case format.PDF:
		selection, _ := cmd.Flags().GetString("pages")
		pages, err := pdfword.ParsePages(selection)
		if err != nil {
			return err
		}
		conv := cfg.Converter(logging.Module(logger, "inspect"))
		if len(pages) > 0 {
			conv = conv.Pages(pages...)
		}
		doc, warnings, err := conv.Document(cmd.Context(), data)
		if err != nil {
			return err
		}
		dump = dumpDocument(doc, warnings)
	case format.DOCX:
		r, err := docx.OpenBytes(data)
		if err != nil {
			return err
		}
		doc, err := r.Document()
		if err != nil {
			return err
		}
		dump = dumpDocument(doc, nil)
	default:
		return fmt.Errorf("%s: unsupported format %s", path, kind)
	}

	return writeDump(cmd.OutOrStdout(), outFormat, dump)
}

func writeDump(w io.Writer, outFormat string, dump documentDump) error {
	if outFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return err
	}
	return enc.Close()
}
