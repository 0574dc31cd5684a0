package pdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizvault/wizvault/internal/domain"
)

func TestExtractText_InvalidBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", []byte{}},
		{"plain text", []byte("this is not a pdf")},
		{"html", []byte("<html><body>hello</body></html>")},
		{"truncated header", []byte("%PDF-1.4")},
		{"binary garbage", []byte{0x00, 0x01, 0x02, 0xff, 0xfe}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.data)
			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestExtractText_InvalidBytesYieldDecodeError(t *testing.T) {
	_, err := ExtractText([]byte("this is not a pdf"))

	var de *domain.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.ErrInvalidPDF.Code, de.Code)
	assert.Equal(t, domain.ErrInvalidPDF.Message, de.Message)
	assert.Error(t, de.Unwrap())
}
