package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPath = "word/document.xml"

// ExtractDOCXText returns the visible text of a Word document, one paragraph per line.
func ExtractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != docxBodyPath {
			continue
		}
		if f.UncompressedSize64 > MaxDocumentSize {
			return "", fmt.Errorf("%w: %s expands to %d bytes", ErrTooLarge, docxBodyPath, f.UncompressedSize64)
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", docxBodyPath, err)
		}
		defer func() { _ = rc.Close() }()
		return paragraphsText(&capReader{r: rc, remaining: MaxDocumentSize})
	}
	return "", fmt.Errorf("%w: missing %s", ErrUnsupportedFormat, docxBodyPath)
}

// capReader fails with ErrTooLarge once more than remaining bytes have been read.
// Archive headers may understate the real size of an entry.
type capReader struct {
	r         io.Reader
	remaining int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return 0, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, docxBodyPath, MaxDocumentSize)
	}
	return n, err
}

// paragraphsText walks WordprocessingML tokens. Text runs (w:t) are concatenated,
// w:tab becomes a tab, w:br and the end of each w:p become newlines.
func paragraphsText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", docxBodyPath, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
