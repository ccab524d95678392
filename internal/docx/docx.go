// Package docx pulls the plain text out of a Word (.docx) document.
//
// Each paragraph becomes its own block followed by a blank line, tabs are
// kept and manual line breaks become newlines. Formatting, images and
// deleted revisions are ignored.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

const documentPart = "word/document.xml"

var wordNamespaces = map[string]bool{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main": true,
	"http://purl.oclc.org/ooxml/wordprocessingml/main":             true,
}

var (
	// ErrNotFound is returned when the document does not exist
	ErrNotFound = errors.New("document not found")
	// ErrNoBody is returned when the archive has no main document part
	ErrNoBody = errors.New("missing " + documentPart)
)

// ExtractText opens the .docx at path and returns its text
func ExtractText(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer r.Close()

	return fromZip(&r.Reader)
}

// Read extracts the text of a .docx held in memory
func Read(ra io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	return fromZip(zr)
}

func fromZip(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", documentPart, err)
		}
		defer rc.Close()
		return extract(rc)
	}
	return "", ErrNoBody
}

// extract walks WordprocessingML and collects run text
func extract(r io.Reader) (string, error) {
	var b strings.Builder
	dec := xml.NewDecoder(r)
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !wordNamespaces[t.Name.Space] {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			if !wordNamespaces[t.Name.Space] {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}
