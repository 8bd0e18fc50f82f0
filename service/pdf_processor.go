package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/client"
)

// minOCRConfidence is the mean word confidence below which a scanned
// page's OCR output is treated as noise.
const minOCRConfidence = 30.0

// PDFProcessor turns PDF bytes into plain text. Implementations try
// progressively heavier strategies until one yields non-empty text.
type PDFProcessor interface {
	ExtractText(pdfData []byte) (string, error)
}

type pdfProcessor struct {
	ocr    *client.TesseractClient
	logger zerolog.Logger
}

// NewPDFProcessor builds the default processor. The OCR client may be
// nil, in which case scanned documents without a text layer fail
// extraction.
func NewPDFProcessor(ocr *client.TesseractClient, logger zerolog.Logger) PDFProcessor {
	return &pdfProcessor{
		ocr:    ocr,
		logger: logger,
	}
}

// ExtractText attempts row-ordered text extraction first, then a flat
// page-stream read, and finally rasterized OCR. Failures of an earlier
// strategy are logged and the next one is tried.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, error) {
	text, err := p.extractByRows(pdfData)
	if err != nil {
		p.logger.Debug().Err(err).Msg("row-based text extraction failed")
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	text, err = p.extractPlain(pdfData)
	if err != nil {
		p.logger.Debug().Err(err).Msg("plain text extraction failed")
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	if p.ocr == nil {
		return "", fmt.Errorf("no text layer found and OCR is disabled")
	}

	text, err = p.extractByOCR(pdfData)
	if err != nil {
		return "", fmt.Errorf("OCR extraction failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text could be extracted from document")
	}
	return text, nil
}

func (p *pdfProcessor) extractByRows(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", err
	}

	var textBuilder bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					textBuilder.WriteString(" ")
				}
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

func (p *pdfProcessor) extractPlain(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", err
	}

	var textBuilder bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

// extractByOCR rasterizes the document's embedded images to a temp
// directory and runs each one through Tesseract.
func (p *pdfProcessor) extractByOCR(pdfData []byte) (string, error) {
	tempDir, err := os.MkdirTemp("", "form16_images")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "form16-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("failed to read temp dir: %w", err)
	}

	var textBuilder bytes.Buffer
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgPath := filepath.Join(tempDir, file.Name())
		text, confidence, err := p.ocr.ExtractTextAndQuality(imgPath)
		if err != nil {
			p.logger.Debug().Str("image", file.Name()).Err(err).Msg("OCR failed for page image")
			continue
		}
		if confidence > 0 && confidence < minOCRConfidence {
			p.logger.Debug().Str("image", file.Name()).Float64("confidence", confidence).Msg("discarding low-confidence OCR output")
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
