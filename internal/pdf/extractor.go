// Package pdf extracts plain text from PDF documents held in memory.
package pdf

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/wizvault/wizvault/internal/domain"
)

// ExtractText returns the concatenated plain text of every page, in page
// order, separated by newlines. Invalid PDF bytes fail the whole extraction;
// there is no partial result.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.ErrInvalidPDF.WithCause(err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			return "", domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "could not extract page text", err)
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
