package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Nix128/asisten-pengawasan-apip/pkg/tika"
)

// ErrUnsupportedType menandai MIME yang tidak bisa diekstrak.
var ErrUnsupportedType = errors.New("unsupported file type")

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Extractor mengubah isi file mentah menjadi teks polos. PDF dan DOCX
// dilempar ke Tika, text/* didecode lokal.
type Extractor struct {
	tika *tika.Client
}

func NewExtractor(tikaClient *tika.Client) *Extractor {
	return &Extractor{tika: tikaClient}
}

// Supported melaporkan apakah MIME masuk whitelist ekstraksi.
func Supported(contentType string) bool {
	switch {
	case contentType == MimePDF, contentType == MimeDOCX:
		return true
	case strings.HasPrefix(contentType, "text/"):
		return true
	}
	return false
}

func (e *Extractor) Extract(ctx context.Context, reader io.Reader, contentType string) (string, error) {
	switch {
	case contentType == MimePDF, contentType == MimeDOCX:
		return e.tika.ExtractText(ctx, reader, contentType)
	case strings.HasPrefix(contentType, "text/"):
		raw, err := io.ReadAll(reader)
		if err != nil {
			return "", err
		}
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("file is not valid utf-8 text")
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
}
