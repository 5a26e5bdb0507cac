package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdfword"
	"github.com/tsawler/pdfword/format"
	"github.com/tsawler/pdfword/htmldoc"
	"github.com/tsawler/pdfword/internal/logging"
	"github.com/tsawler/pdfword/xlsx"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf...]",
	Short: "Convert PDF files to .docx",
	Long: `Convert turns each PDF into a Word package named after the PDF title, or
after the input file when the PDF has none. Files are converted in parallel
up to --concurrency, each under its own --timeout.

With --base64 nothing is written; one JSON object per file is printed with the
file name and the base64 package, the form the browser editor consumes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	flags := convertCmd.Flags()
	flags.String("out-dir", "", "directory for the output files (default: current directory)")
	flags.Int("concurrency", 0, "number of files converted at once (default 4)")
	flags.Duration("timeout", 0, "per-file conversion timeout, 0 for none (default 60s)")
	flags.String("title", "", "file name used when a PDF has no title (default: input file name)")
	flags.String("pages", "", "pages to convert, e.g. 1-2,4 (default: all)")
	flags.Bool("base64", false, "print JSON {file_name, content} instead of writing files")
	flags.Bool("html", false, "also write an HTML preview")
	flags.Bool("xlsx", false, "also write the detected tables as .xlsx")

	_ = settings.BindPFlag("convert.out_dir", flags.Lookup("out-dir"))
	_ = settings.BindPFlag("convert.concurrency", flags.Lookup("concurrency"))
	_ = settings.BindPFlag("convert.timeout", flags.Lookup("timeout"))

	rootCmd.AddCommand(convertCmd)
}

// encodedResult is the --base64 output line.
type encodedResult struct {
	FileName string            `json:"file_name"`
	Content  string            `json:"content"`
	Warnings []pdfword.Warning `json:"warnings,omitempty"`
}

// convertJob holds the flags shared by every file of a batch.
type convertJob struct {
	conv     *pdfword.Converter
	outDir   string
	title    string
	withHTML bool
	withXLSX bool
	encode   bool
	out      io.Writer

	mu      sync.Mutex // guards out and claimed
	claimed map[string]bool
}

func runConvert(cmd *cobra.Command, args []string) error {
	selection, _ := cmd.Flags().GetString("pages")
	pages, err := pdfword.ParsePages(selection)
	if err != nil {
		return err
	}

	conv := cfg.Converter(logging.Module(logger, "convert"))
	if len(pages) > 0 {
		conv = conv.Pages(pages...)
	}

	job := &convertJob{
		conv:   conv,
		outDir: cfg.Convert.OutDir,
		out:    cmd.OutOrStdout(),
	}
	job.title, _ = cmd.Flags().GetString("title")
	job.withHTML, _ = cmd.Flags().GetBool("html")
	job.withXLSX, _ = cmd.Flags().GetBool("xlsx")
	job.encode, _ = cmd.Flags().GetBool("base64")

	if !job.encode {
		if err := os.MkdirAll(job.outDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", job.outDir, err)
		}
	}

	var (
		failMu   sync.Mutex
		failures []error
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Convert.Concurrency)
	for _, path := range args {
		path := path
		g.Go(func() error {
			fileCtx, cancel := fileContext(ctx, cfg.Convert.Timeout)
			defer cancel()

			if err := job.run(fileCtx, path); err != nil {
				logger.Error("conversion failed", "file", path, "error", err)
				failMu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", path, err))
				failMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", len(failures), len(args), errors.Join(failures...))
	}
	return nil
}

func (j *convertJob) run(ctx context.Context, path string) error {
	conv := j.conv
	if j.title != "" {
		conv = conv.DefaultTitle(j.title)
	} else {
		conv = conv.DefaultTitle(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}

	res, err := conv.ConvertFile(ctx, path)
	if err != nil {
		return err
	}
	if len(res.Warnings) > 0 {
		logger.Warn("converted with warnings", "file", path, "warnings", pdfword.FormatWarnings(res.Warnings))
	}

	if j.encode {
		line, err := json.Marshal(encodedResult{
			FileName: res.FileName,
			Content:  res.Base64(),
			Warnings: res.Warnings,
		})
		if err != nil {
			return err
		}
		j.println(string(line))
		return nil
	}

	target := filepath.Join(j.outDir, j.claim(res.FileName))
	if err := os.WriteFile(target, res.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	j.println(fmt.Sprintf("%s -> %s (%d bytes)", path, target, res.Size()))

	stem := strings.TrimSuffix(target, format.DOCX.Extension())
	if j.withHTML {
		page, err := htmldoc.Render(res.Document)
		if err != nil {
			return err
		}
		if err := os.WriteFile(stem+format.HTML.Extension(), page, 0o644); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
	}
	if j.withXLSX {
		book, err := xlsx.ExportDocument(res.Document)
		switch {
		case errors.Is(err, xlsx.ErrNoTables):
			logger.Info("no tables to export", "file", path)
		case err != nil:
			return err
		default:
			if err := os.WriteFile(stem+format.XLSX.Extension(), book, 0o644); err != nil {
				return fmt.Errorf("writing tables: %w", err)
			}
		}
	}
	return nil
}

// claim reserves an output name for this batch. A name already taken by
// another input gets a numbered suffix: "Resume.docx", "Resume (2).docx".
func (j *convertJob) claim(name string) string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.claimed == nil {
		j.claimed = make(map[string]bool)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 2; j.claimed[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	j.claimed[strings.ToLower(candidate)] = true
	return candidate
}

// fileContext bounds one conversion. A zero timeout means no limit.
func fileContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (j *convertJob) println(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	fmt.Fprintln(j.out, s)
}
