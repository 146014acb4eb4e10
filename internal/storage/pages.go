package storage

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCounter reports the number of pages of a stored document.
type PageCounter interface {
	CountPages(path string) (int, error)
}

// PageCounterFunc adapts a function to PageCounter.
type PageCounterFunc func(path string) (int, error)

func (f PageCounterFunc) CountPages(path string) (int, error) { return f(path) }

// PDFPageCounter counts pages of PDF documents with pdfcpu.
type PDFPageCounter struct{}

// NewPDFPageCounter keeps pdfcpu from creating its per-user config directory.
func NewPDFPageCounter() PDFPageCounter {
	api.DisableConfigDir()
	return PDFPageCounter{}
}

func (PDFPageCounter) CountPages(path string) (int, error) {
	return api.PageCountFile(path)
}
