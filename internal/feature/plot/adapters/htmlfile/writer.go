// Package htmlfile writes dashboard pages as standalone HTML files.
package htmlfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"stock_sentiment/internal/feature/plot/domain/entity"
	"stock_sentiment/internal/feature/plot/transport/view"
	"stock_sentiment/internal/feature/plot/usecase"
)

// Writer writes <dir>/<SYMBOL>.html.
type Writer struct {
	dir string
}

var _ usecase.PageWriter = (*Writer)(nil)

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WritePage renders p with the result page template and returns the file path.
// The file is written to a temporary name first and renamed on success.
func (w *Writer) WritePage(p *entity.Plot) (string, error) {
	path := filepath.Join(w.dir, filepath.Base(p.Symbol)+".html")

	tmp, err := os.CreateTemp(w.dir, ".snapshot-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := view.Render(bw, view.PlotTemplate, view.NewPlotPage(p)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("render page: %w", err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
