// ABOUTME: Tests for format sniffing, header dimension parsing and the pixel guard
// ABOUTME: Fixtures come from the stdlib encoders plus hand-built WebP and JPEG headers

package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 50}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func makeGIF(t *testing.T, w, h int) []byte {
	t.Helper()
	palette := []color.Color{color.Black, color.White}
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func webpVP8X(w, h int) []byte {
	b := make([]byte, 30)
	copy(b, "RIFF")
	copy(b[8:], "WEBPVP8X")
	for i := range 3 {
		b[24+i] = byte((w - 1) >> (8 * i))
		b[27+i] = byte((h - 1) >> (8 * i))
	}
	return b
}

func webpVP8L(w, h int) []byte {
	b := make([]byte, 25)
	copy(b, "RIFF")
	copy(b[8:], "WEBPVP8L")
	b[20] = 0x2F
	binary.LittleEndian.PutUint32(b[21:25], uint32(w-1)|uint32(h-1)<<14)
	return b
}

// progressiveJPEG is SOI, an APP0 segment, a restart marker and an SOF2 frame.
func progressiveJPEG(w, h int) []byte {
	b := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x04, 0x00, 0x00, 0xFF, 0xD0}
	sof := []byte{0xFF, 0xC2, 0x00, 0x11, 0x08, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(sof[5:7], uint16(h))
	binary.BigEndian.PutUint16(sof[7:9], uint16(w))
	return append(b, sof...)
}

func TestGetDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  []byte
		wantW int
		wantH int
	}{
		{name: "png", data: makePNG(t, 320, 240), wantW: 320, wantH: 240},
		{name: "jpeg baseline", data: makeJPEG(t, 640, 480), wantW: 640, wantH: 480},
		{name: "jpeg progressive", data: progressiveJPEG(1200, 900), wantW: 1200, wantH: 900},
		{name: "gif", data: makeGIF(t, 100, 50), wantW: 100, wantH: 50},
		{name: "webp extended", data: webpVP8X(4000, 3000), wantW: 4000, wantH: 3000},
		{name: "webp lossless", data: webpVP8L(17, 9), wantW: 17, wantH: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dim, err := GetDimensions(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if dim.Width != tt.wantW || dim.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", dim.Width, dim.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestGetDimensions_Errors(t *testing.T) {
	t.Parallel()

	badIHDR := makePNG(t, 4, 4)
	copy(badIHDR[12:16], "IDAT")
	badVP8L := webpVP8L(4, 4)
	badVP8L[20] = 0

	tests := []struct {
		name    string
		data    []byte
		unknown bool
	}{
		{name: "empty", data: nil, unknown: true},
		{name: "bare png signature", data: []byte("\x89PNG\r\n\x1a\n")},
		{name: "png without IHDR", data: badIHDR},
		{name: "jpeg without frame", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x04, 0x00, 0x00}},
		{name: "jpeg zero segment", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x00}},
		{name: "webp lossless bad signature", data: badVP8L},
		{name: "text", data: []byte("not an image at all"), unknown: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := GetDimensions(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrUnknownFormat); got != tt.unknown {
				t.Errorf("errors.Is(ErrUnknownFormat) = %v, want %v (%v)", got, tt.unknown, err)
			}
		})
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		want     Format
		wantMIME string
	}{
		{name: "png", data: makePNG(t, 2, 2), want: FormatPNG, wantMIME: "image/png"},
		{name: "jpeg", data: makeJPEG(t, 2, 2), want: FormatJPEG, wantMIME: "image/jpeg"},
		{name: "gif", data: makeGIF(t, 2, 2), want: FormatGIF, wantMIME: "image/gif"},
		{name: "webp", data: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: FormatWebP, wantMIME: "image/webp"},
		{name: "truncated png", data: []byte{0x89, 'P', 'N', 'G'}, want: FormatUnknown, wantMIME: "application/octet-stream"},
		{name: "riff wave", data: []byte("RIFF\x00\x00\x00\x00WAVEfmt "), want: FormatUnknown, wantMIME: "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Sniff(tt.data)
			if got != tt.want {
				t.Errorf("Sniff() = %v, want %v", got, tt.want)
			}
			if got.MIME() != tt.wantMIME {
				t.Errorf("MIME() = %q, want %q", got.MIME(), tt.wantMIME)
			}
		})
	}
}

func TestDimensionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dim      Dimensions
		wantErr  bool
		tooLarge bool
	}{
		{name: "ordinary", dim: Dimensions{Width: 1920, Height: 1080}},
		{name: "at limit", dim: Dimensions{Width: 8192, Height: 8192}},
		{name: "zero width", dim: Dimensions{Width: 0, Height: 10}, wantErr: true},
		{name: "over limit", dim: Dimensions{Width: 16384, Height: 16384}, wantErr: true, tooLarge: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.dim.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrTooLarge) != tt.tooLarge {
				t.Errorf("errors.Is(ErrTooLarge) = %v, want %v", errors.Is(err, ErrTooLarge), tt.tooLarge)
			}
		})
	}
}
