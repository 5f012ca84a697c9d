// Command ocrprobe runs the recognition pipeline over a saved screenshot
// and prints the raw text of every attempt plus the normalized candidate
// list. Useful for tuning thresholds against real tooltip captures.
package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"eft-overlay/internal/ocr"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: ocrprobe <image file>")
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("failed to open image: %v", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Fatalf("failed to decode image: %v", err)
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		log.Fatalf("failed to initialize engine: %v", err)
	}
	defer engine.Close()

	texts, err := engine.Recognize(img)
	if err != nil {
		log.Fatalf("recognition failed: %v", err)
	}

	for i, text := range texts {
		fmt.Printf("--- attempt %d ---\n%s\n", i+1, text)
	}

	fmt.Println("--- candidates ---")
	for _, cand := range ocr.Candidates(texts, ocr.DefaultMinLineLen) {
		fmt.Println(cand)
	}
}
