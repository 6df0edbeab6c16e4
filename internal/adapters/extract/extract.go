package extract

import (
	"bytes"
	"crypto/sha1"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

// Service extracts raw text from uploaded documents, dispatching on file
// extension. Results are cached by content hash so re-extraction of the same
// upload is free.
type Service struct {
	cache Cache
}

func NewService() *Service {
	return &Service{cache: NewLRU(64, 30*time.Minute)}
}

// ExtractText implements domain.Extractor for .pdf, .docx, .txt, .md, .csv.
func (s *Service) ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	key := cacheKey(ext, data)
	if text, ok := s.cache.Get(key); ok {
		return text, nil
	}

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt", ".md":
		// rune-based chunking downstream needs valid UTF-8
		text = strings.ToValidUTF8(string(data), "�")
	case ".csv":
		text, err = extractCSV(data)
	default:
		return "", fmt.Errorf("%w: %q (want .pdf, .docx, .txt, .md, or .csv)",
			domain.ErrUnsupportedMedia, ext)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no readable text in %s", domain.ErrExtraction, filename)
	}

	s.cache.Set(key, text, 0)
	return text, nil
}

func cacheKey(ext string, data []byte) string {
	h := sha1.Sum(data)
	return ext + ":" + hex.EncodeToString(h[:])
}

func extractCSV(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var b strings.Builder
	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		b.WriteString(strings.Join(record, ", "))
		b.WriteByte('\n')
		rows++
	}
	if rows == 0 {
		return "", nil
	}
	return fmt.Sprintf("[CSV Content - %d rows]\n%s", rows, b.String()), nil
}
