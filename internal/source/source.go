package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields the pages to trim: a single image, a directory of images or
// the pages of a PDF.
type Source interface {
	PageCount() int
	// PageDimensions reports the native size of a page without decoding it.
	PageDimensions(index int) (width, height int, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	// PageName is the file name used for the page's output.
	PageName(index int) string
	Close() error
}

// Open picks the source implementation for path.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}

// IsMultiPage reports whether path expands to more than one output file,
// in which case the output argument names a directory.
func IsMultiPage(path string) bool {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return true
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	// MuPDF repairs broken files, which can leave a document without pages.
	if doc.NumPage() < 1 {
		doc.Close()
		return nil, fmt.Errorf("open pdf %s: no pages", path)
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

// PageDimensions returns the page size in points (1/72 inch).
func (f *FitzPDFSource) PageDimensions(index int) (int, int, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return rect.Dx(), rect.Dy(), nil
}

func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	// A document handle is not safe for concurrent rendering.
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) PageName(index int) string {
	return fmt.Sprintf("page_%03d.png", index+1)
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
