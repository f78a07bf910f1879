package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gardar/hybridoc/internal/config"
	"github.com/gardar/hybridoc/pkg/docx"
	"github.com/gardar/hybridoc/pkg/gdocai"
	"github.com/gardar/hybridoc/pkg/hocr"
	"github.com/gardar/hybridoc/pkg/hybrid"
	"github.com/gardar/hybridoc/pkg/layout"
	"github.com/gardar/hybridoc/pkg/pdfdoc"
	"github.com/gardar/hybridoc/pkg/raster"
)

// convertOptions holds the convert flags
type convertOptions struct {
	Output    string
	Layout    string
	HOCR      string
	PDF       string
	ImagesDir string
	DebugAPI  string
}

var convertOpts convertOptions

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a layout analysis into a DOCX, PDF or JSON document",
	Long: `Convert reads exactly one source and writes the reconstructed document.

Sources:
  --layout  analyze-result JSON (bare or wrapped in "analyzeResult")
  --hocr    hOCR file
  --pdf     PDF, analyzed with Google Document AI

The output format follows the extension of --output: .docx, .pdf or .json.`,
	Example: `  hybridoc convert -o report.docx --pdf scan.pdf
  hybridoc convert -o report.pdf --layout result.json --images pages/`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context(), convertOpts, cfg, log)
	},
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertOpts.Output, "output", "o", "", "output file (.docx, .pdf or .json)")
	f.StringVar(&convertOpts.Layout, "layout", "", "analyze-result JSON file")
	f.StringVar(&convertOpts.HOCR, "hocr", "", "hOCR file")
	f.StringVar(&convertOpts.PDF, "pdf", "", "PDF file to analyze with Document AI")
	f.StringVar(&convertOpts.ImagesDir, "images", "", "directory of page images (page_1.png, ...)")
	f.StringVar(&convertOpts.DebugAPI, "debug-api", "", "path to save the raw Document AI response as JSON")

	_ = convertCmd.MarkFlagRequired("output")
	convertCmd.MarkFlagsOneRequired("layout", "hocr", "pdf")
	convertCmd.MarkFlagsMutuallyExclusive("layout", "hocr", "pdf")
}

// runConvert loads the source, assembles the document and writes the output
func runConvert(ctx context.Context, opts convertOptions, cfg *config.Config, log logrus.FieldLogger) error {
	format, err := outputFormat(opts.Output)
	if err != nil {
		return err
	}
	sourcePath, err := opts.source()
	if err != nil {
		return err
	}

	data, err := readSource(sourcePath, cfg.Limits.MaxBytes)
	if err != nil {
		return err
	}

	var (
		res    *layout.Result
		images map[int]raster.Image
		issues []layout.Issue
	)
	switch {
	case opts.PDF != "":
		pages, err := pdfdoc.PageCount(data)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", sourcePath, err)
		}
		if err := checkPages(pages, cfg.Limits.MaxPages); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"path": sourcePath, "pages": pages}).Info("Analyzing document with Document AI")

		analysis, err := gdocai.Analyze(ctx, data, cfg.GDocAI())
		if err != nil {
			return err
		}
		if opts.DebugAPI != "" {
			if err := saveJSON(opts.DebugAPI, analysis.Raw); err != nil {
				return err
			}
			log.WithField("path", opts.DebugAPI).Info("Saved raw API response")
		}
		res, images = analysis.Layout, analysis.Images

	case opts.HOCR != "":
		if res, err = hocr.Parse(data); err != nil {
			return fmt.Errorf("failed to parse %s: %w", sourcePath, err)
		}

	default:
		res, issues = layout.Normalize(data)
	}

	if res == nil {
		res = layout.Empty()
	}
	if err := checkPages(len(res.Pages), cfg.Limits.MaxPages); err != nil {
		return err
	}

	if opts.ImagesDir != "" {
		loaded, err := raster.LoadDir(opts.ImagesDir)
		if err != nil {
			return err
		}
		for _, skipped := range loaded.Skipped {
			log.WithFields(logrus.Fields{"path": skipped.Path}).Warn("Skipped image: " + skipped.Reason)
		}
		images = mergeImages(images, loaded.Images)
	}

	doc := hybrid.Assemble(res, images,
		hybrid.WithWorkers(cfg.Render.Workers),
		hybrid.WithLayoutIssues(issues),
	)
	logDiagnostics(log, doc.Diagnostics)

	out, err := encode(doc, format, opts, cfg, data, log)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.WithFields(logrus.Fields{
		"path":   opts.Output,
		"pages":  len(res.Pages),
		"tables": doc.Count(hybrid.KindTable),
		"images": doc.Count(hybrid.KindImage),
	}).Info("Wrote document")
	return nil
}

// source returns the single source path
func (o convertOptions) source() (string, error) {
	var set []string
	for _, p := range []string{o.Layout, o.HOCR, o.PDF} {
		if p != "" {
			set = append(set, p)
		}
	}
	if len(set) != 1 {
		return "", fmt.Errorf("exactly one of --layout, --hocr or --pdf is required")
	}
	return set[0], nil
}

// outputFormat returns the serializer for an output path
func outputFormat(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--output is required")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".docx", ".pdf", ".json":
		return ext[1:], nil
	default:
		return "", fmt.Errorf("unsupported output format %q, use .docx, .pdf or .json", ext)
	}
}

// readSource reads a source file, refusing files over maxBytes
func readSource(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source %s is a directory", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("source %s is %d bytes, limit is %d", path, info.Size(), maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return data, nil
}

func checkPages(pages, maxPages int) error {
	if maxPages > 0 && pages > maxPages {
		return fmt.Errorf("document has %d pages, limit is %d", pages, maxPages)
	}
	return nil
}

// mergeImages overlays page images from a directory on the analysis images
func mergeImages(base, override map[int]raster.Image) map[int]raster.Image {
	merged := make(map[int]raster.Image, len(base)+len(override))
	for page, img := range base {
		merged[page] = img
	}
	for page, img := range override {
		merged[page] = img
	}
	return merged
}

func logDiagnostics(log logrus.FieldLogger, diags []hybrid.Diagnostic) {
	for _, d := range diags {
		fields := logrus.Fields{"code": d.Code}
		if d.Page > 0 {
			fields["page"] = d.Page
		}
		if d.Table > 0 {
			fields["table"] = d.Table
		}
		log.WithFields(fields).Warn(d.Message)
	}
}

// encode serializes the document in the requested format
func encode(doc *hybrid.Document, format string, opts convertOptions, cfg *config.Config, source []byte, log logrus.FieldLogger) ([]byte, error) {
	switch format {
	case "docx":
		dopts := docx.DefaultOptions()
		dopts.Title = documentTitle(opts)
		dopts.Page = docx.PageSizeByName(cfg.Render.PageSize)
		return docx.Encode(doc, dopts)

	case "pdf":
		pcfg := pdfdoc.DefaultConfig()
		pcfg.PageSize = cfg.Render.PageSize
		pcfg.Layers = cfg.Render.Layers
		pcfg.Logger = log
		if opts.PDF != "" {
			pcfg.SourcePDF = source
		}
		return pdfdoc.Render(doc, pcfg)

	default:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode document tree: %w", err)
		}
		return append(out, '\n'), nil
	}
}

// documentTitle derives a title from the source file name
func documentTitle(opts convertOptions) string {
	src, _ := opts.source()
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func saveJSON(path string, v interface{}) error {
	out, err := gdocai.ToJSON(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
