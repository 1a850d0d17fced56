// ABOUTME: Image resize pipeline producing PNG for the Kitty graphics protocol
// ABOUTME: Uses CatmullRom interpolation; shrinks further until the PNG fits the byte budget

package image

import (
	"bytes"
	"fmt"
	goimage "image"
	"image/png"

	// Register decoders for standard formats.
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// shrinkSteps are the extra scale factors tried when a PNG is over budget.
var shrinkSteps = []float64{0.75, 0.5, 0.35, 0.25}

// Resize scales image data to fit within maxDim pixels and returns it as PNG,
// together with the final pixel dimensions.
//
// Algorithm:
//  1. PNG input already within both limits is returned as-is.
//  2. Otherwise decode, fit to maxDim preserving aspect ratio (CatmullRom).
//  3. Encode as PNG; while over maxBytes, rescale at 0.75, 0.5, 0.35, 0.25.
//
// The smallest attempt is returned even if it is still over maxBytes.
func Resize(data []byte, maxDim, maxBytes int) ([]byte, Dimensions, error) {
	if len(data) == 0 {
		return nil, Dimensions{}, fmt.Errorf("empty image data")
	}

	dim, err := GetDimensions(data)
	if err != nil {
		return nil, Dimensions{}, fmt.Errorf("reading dimensions: %w", err)
	}
	if err := dim.Validate(); err != nil {
		return nil, Dimensions{}, err
	}

	if Sniff(data) == FormatPNG && dim.Width <= maxDim && dim.Height <= maxDim && len(data) <= maxBytes {
		return data, dim, nil
	}

	img, _, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Dimensions{}, fmt.Errorf("decoding image: %w", err)
	}

	targetW, targetH := fitDimensions(dim.Width, dim.Height, maxDim)
	out, err := encodePNG(resizeImage(img, targetW, targetH))
	if err != nil {
		return nil, Dimensions{}, err
	}
	final := Dimensions{Width: targetW, Height: targetH}

	for _, scale := range shrinkSteps {
		if len(out) <= maxBytes {
			break
		}
		final = Dimensions{
			Width:  max(int(float64(targetW)*scale), 1),
			Height: max(int(float64(targetH)*scale), 1),
		}
		out, err = encodePNG(resizeImage(img, final.Width, final.Height))
		if err != nil {
			return nil, Dimensions{}, err
		}
	}
	return out, final, nil
}

// DecodeRGBA decodes image data and scales it to fit within maxDim pixels.
func DecodeRGBA(data []byte, maxDim int) (*goimage.RGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	dim, err := GetDimensions(data)
	if err != nil {
		return nil, fmt.Errorf("reading dimensions: %w", err)
	}
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	img, _, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	w, h := fitDimensions(b.Dx(), b.Dy(), maxDim)
	return resizeImage(img, max(w, 1), max(h, 1)), nil
}

// fitDimensions calculates new dimensions that fit within maxDim while preserving aspect ratio.
func fitDimensions(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		return maxDim, h * maxDim / w
	}
	return w * maxDim / h, maxDim
}

// resizeImage scales an image to the target dimensions using CatmullRom interpolation.
func resizeImage(src goimage.Image, w, h int) *goimage.RGBA {
	dst := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func encodePNG(img goimage.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
