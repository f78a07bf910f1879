// hybridoc rebuilds an editable document from a page-oriented layout
// analysis: every page gets a heading, its page image, its tables and the
// text lines the tables do not already cover.
//
// Usage:
//
//	hybridoc convert -o out.docx --pdf scan.pdf
//	hybridoc convert -o out.pdf --layout result.json --images pages/
//	hybridoc convert -o tree.json --hocr scan.hocr
//	hybridoc config
//
// Configuration is read from --config, ./hybridoc.yaml or
// ~/.hybridoc/hybridoc.yaml, and HYBRIDOC_* environment variables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
