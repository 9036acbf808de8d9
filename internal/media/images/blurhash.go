package images

import (
	"fmt"
	"image"

	"github.com/bbrks/go-blurhash"
)

// blurhashSize is the thumbnail edge used for blurhash computation. The
// hash is a low-resolution placeholder, so a small input produces nearly
// identical results at a fraction of the cost.
const blurhashSize = 64

// computeBlurhash encodes a 4x3-component blurhash from an image, resizing
// to a small thumbnail first.
func computeBlurhash(img image.Image) (string, error) {
	hash, err := blurhash.Encode(4, 3, resizeForBlurhash(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

// resizeForBlurhash scales the image down with nearest-neighbor sampling,
// which is fast and sufficient for a placeholder hash.
func resizeForBlurhash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	if srcWidth <= blurhashSize && srcHeight <= blurhashSize {
		return img
	}

	var dstWidth, dstHeight int
	if srcWidth > srcHeight {
		dstWidth = blurhashSize
		dstHeight = max(1, (srcHeight*blurhashSize)/srcWidth)
	} else {
		dstHeight = blurhashSize
		dstWidth = max(1, (srcWidth*blurhashSize)/srcHeight)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := 0; y < dstHeight; y++ {
		for x := 0; x < dstWidth; x++ {
			srcX := int(float64(x) * xRatio)
			srcY := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}

	return dst
}
