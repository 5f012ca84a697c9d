package ocr

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Variant identifies one binarization strategy applied before
// recognition. Tooltip text renders light-on-dark with varying backdrop
// noise, so two complementary thresholds are tried per cycle.
type Variant int

const (
	// VariantOtsu applies a global Otsu threshold.
	VariantOtsu Variant = iota
	// VariantFixed applies a fixed threshold at a mid-gray value.
	VariantFixed
)

// Variants lists the binarizations run on every detection cycle.
var Variants = [...]Variant{VariantOtsu, VariantFixed}

// fixedThresholdValue separates text from the tooltip backdrop when Otsu
// picks a threshold skewed by large dark regions.
const fixedThresholdValue = 150

// grayFromImage converts a captured frame to a grayscale Mat.
func grayFromImage(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to convert capture: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)
	return gray, nil
}

// binarize applies the given variant to a grayscale Mat. The caller owns
// the returned Mat.
func binarize(gray gocv.Mat, v Variant) gocv.Mat {
	bin := gocv.NewMat()
	switch v {
	case VariantFixed:
		gocv.Threshold(gray, &bin, fixedThresholdValue, 255, gocv.ThresholdBinary)
	default:
		gocv.Threshold(gray, &bin, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	}
	return bin
}
