// Package ocr provides text recognition for captured screen regions.
package ocr

import (
	"fmt"
	"image"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// pageSegModes are the Tesseract segmentation modes tried per variant:
// a single uniform text block, and sparse text in no particular order.
// Together with the two binarization variants this gives four
// recognition attempts per detection cycle.
var pageSegModes = [...]gosseract.PageSegMode{
	gosseract.PSM_SINGLE_BLOCK,
	gosseract.PSM_SPARSE_TEXT,
}

// Engine wraps a Tesseract client. The client holds per-call state, so
// Engine serializes recognition internally; callers may share one Engine
// across goroutines.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewEngine creates a Tesseract-backed recognition engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Disable dictionary-based word correction - item names are full of
	// model numbers and calibers that Tesseract would "fix" otherwise.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")
	_ = client.SetVariable("language_model_penalty_non_freq_dict_word", "0")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		err := e.client.Close()
		e.client = nil
		return err
	}
	return nil
}

// Recognize runs every binarization variant and segmentation mode over
// the captured frame and returns the raw text of each successful
// attempt. Individual attempts may fail independently and are skipped;
// an empty result is not an error.
func (e *Engine) Recognize(img image.Image) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return nil, fmt.Errorf("recognition engine closed")
	}

	gray, err := grayFromImage(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	var texts []string
	for _, variant := range Variants {
		bin := binarize(gray, variant)

		buf, err := gocvEncodePNG(bin)
		bin.Close()
		if err != nil {
			continue
		}

		for _, psm := range pageSegModes {
			if err := e.client.SetPageSegMode(psm); err != nil {
				continue
			}
			if err := e.client.SetImageFromBytes(buf); err != nil {
				continue
			}
			text, err := e.client.Text()
			if err != nil {
				continue
			}
			texts = append(texts, text)
		}
	}
	return texts, nil
}
