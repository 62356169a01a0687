// Package ingestion loads resume documents and prepares them for scoring.
package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind is the detected resume format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZip  = "application/zip"
	mimeText = "text/plain"
)

// MaxDocumentSize bounds resume uploads.
const MaxDocumentSize = 10 << 20

var (
	// ErrUnsupportedFormat is returned for documents that are not PDF, DOCX or plain text.
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrEmptyDocument is returned for zero-length input or a DOCX without text.
	ErrEmptyDocument = errors.New("resume document is empty")
	// ErrTooLarge is returned for documents over MaxDocumentSize.
	ErrTooLarge = errors.New("resume document too large")
)

// Document is a loaded resume. PDFs keep their raw bytes for inline upload to the model;
// DOCX and text resumes carry extracted, cleaned Text.
type Document struct {
	Name     string
	Kind     Kind
	Data     []byte
	Text     string
	Metadata *Metadata
}

// MIMEType returns the content type used when sending the raw document to the model.
func (d *Document) MIMEType() string {
	switch d.Kind {
	case KindPDF:
		return mimePDF
	case KindDOCX:
		return mimeDOCX
	default:
		return mimeText
	}
}

// Inline reports whether the document is sent as binary rather than as prompt text.
func (d *Document) Inline() bool {
	return d.Kind == KindPDF
}

// Detect sniffs the resume format from content, falling back to the file extension for
// archives and text that the sniffer cannot classify.
func Detect(name string, data []byte) (Kind, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is(mimePDF):
		return KindPDF, nil
	case mt.Is(mimeDOCX), mt.Is(mimeZip):
		if isWordArchive(data) {
			return KindDOCX, nil
		}
	case mt.Is(mimeText):
		return KindText, nil
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return KindText, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, name, mt.String())
}

// FromBytes builds a Document from uploaded content.
func FromBytes(name string, data []byte) (*Document, error) {
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	kind, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	doc := &Document{Name: name, Kind: kind, Data: data}
	switch kind {
	case KindDOCX:
		text, err := ExtractDOCXText(data)
		if err != nil {
			return nil, err
		}
		doc.Text = CleanText(text)
	case KindText:
		doc.Text = CleanText(string(data))
	}
	if kind != KindPDF && doc.Text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, name)
	}

	doc.Metadata = NewMetadata(name, kind, data)
	return doc, nil
}

// Load reads a resume from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return FromBytes(filepath.Base(path), data)
}

func isWordArchive(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == docxBodyPath {
			return true
		}
	}
	return false
}
