package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

const (
	defaultMinOCRWidth  = 1000
	defaultOCRThreshold = 150
)

// Preprocessor prepares scanned images for OCR: grayscale, upscale narrow
// scans, then binarize.
type Preprocessor struct {
	MinWidth  int   // images narrower than this are upscaled to it
	Threshold uint8 // luminance above the cut becomes white
}

// DefaultPreprocessor returns the settings tuned for phone photos of reports.
func DefaultPreprocessor() Preprocessor {
	return Preprocessor{MinWidth: defaultMinOCRWidth, Threshold: defaultOCRThreshold}
}

// Apply returns a new black-and-white image; src is not modified.
func (p Preprocessor) Apply(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)

	if p.MinWidth > 0 && b.Dx() > 0 && b.Dx() < p.MinWidth {
		scale := float64(p.MinWidth) / float64(b.Dx())
		height := int(float64(b.Dy())*scale + 0.5)
		if height < 1 {
			height = 1
		}
		scaled := image.NewGray(image.Rect(0, 0, p.MinWidth, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), gray, gray.Bounds(), draw.Src, nil)
		gray = scaled
	}

	for i, y := range gray.Pix {
		if y > p.Threshold {
			gray.Pix[i] = 0xff
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray
}

// preprocessImage decodes and binarizes an upload, returning PNG bytes ready
// for the OCR engine.
func (p Preprocessor) preprocessImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ExtractionError{
			Code:    ErrInvalidDocument,
			Message: "decode image",
			Cause:   err,
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, p.Apply(img)); err != nil {
		return nil, fmt.Errorf("encode preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}

// extractImage runs the OCR engines and maps their outcome onto the text
// contract: OCR_EMPTY becomes PlaceholderOCREmpty, any other failure
// (including a panic) becomes PlaceholderOCRUnsupported.
func (e *Extractor) extractImage(ctx context.Context, data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Warn("recovered from panic during OCR")
			text = PlaceholderOCRUnsupported
		}
	}()

	processed, err := e.preprocessor.preprocessImage(data)
	if err != nil {
		log.WithError(err).Warn("image preprocessing failed")
		return PlaceholderOCRUnsupported
	}

	out, err := e.recognize(ctx, processed, data)
	if err == nil {
		return out
	}
	var extErr *ExtractionError
	if errors.As(err, &extErr) && extErr.Code == ErrOCREmpty {
		log.WithError(err).Info("ocr found no text")
		return PlaceholderOCREmpty
	}
	log.WithError(err).Warn("ocr unavailable")
	return PlaceholderOCRUnsupported
}

// recognize tries the primary engine on the preprocessed image, then the
// fallback engine on the original upload. It returns OCR_EMPTY when an
// engine ran but found no text and OCR_UNAVAILABLE when none could run.
func (e *Extractor) recognize(ctx context.Context, processed, original []byte) (string, error) {
	attempts := []struct {
		engine OCREngine
		input  []byte
	}{
		{e.primaryOCR, processed},
		{e.fallbackOCR, original},
	}

	tried, failed := 0, 0
	var lastErr error
	for _, a := range attempts {
		if a.engine == nil {
			continue
		}
		tried++
		out, err := a.engine.Recognize(ctx, a.input)
		if err != nil {
			failed++
			lastErr = err
			log.WithError(err).WithField("engine", a.engine.Name()).Warn("ocr engine failed")
			continue
		}
		if strings.TrimSpace(out) != "" {
			log.WithField("engine", a.engine.Name()).Info("ocr succeeded")
			return out, nil
		}
		log.WithField("engine", a.engine.Name()).Info("ocr returned empty text")
	}

	switch {
	case tried == 0:
		return "", &ExtractionError{Code: ErrOCRUnavailable, Message: "no OCR engine configured"}
	case failed == tried:
		return "", &ExtractionError{Code: ErrOCRUnavailable, Message: "every OCR engine failed", Cause: lastErr}
	}
	return "", &ExtractionError{Code: ErrOCREmpty, Message: "OCR returned no text"}
}
