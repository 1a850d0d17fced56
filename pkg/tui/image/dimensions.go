// ABOUTME: Format sniffing and header-only dimension parsing for PNG, JPEG, GIF and WebP
// ABOUTME: Rejects empty or oversized canvases before anything is decoded

package image

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxPixels bounds the canvas size accepted for decoding (64 megapixels).
const MaxPixels = 64 << 20

var (
	// ErrUnknownFormat is returned for data whose magic bytes match no supported format.
	ErrUnknownFormat = errors.New("unrecognized image format")
	// ErrTooLarge is returned when a header declares more than MaxPixels pixels.
	ErrTooLarge = errors.New("image too large")
)

// Format identifies an image container by its magic bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatWebP
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// MIME returns the media type for f.
func (f Format) MIME() string {
	if f == FormatUnknown {
		return "application/octet-stream"
	}
	return "image/" + f.String()
}

// Sniff reports the format of data from its leading bytes.
func Sniff(data []byte) Format {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return FormatPNG
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return FormatJPEG
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return FormatGIF
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return FormatWebP
	}
	return FormatUnknown
}

// Dimensions holds the width and height of an image in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Validate rejects empty canvases and those above MaxPixels.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", d.Width, d.Height)
	}
	if int64(d.Width)*int64(d.Height) > MaxPixels {
		return fmt.Errorf("%dx%d: %w", d.Width, d.Height, ErrTooLarge)
	}
	return nil
}

// GetDimensions extracts width and height from image header bytes.
func GetDimensions(data []byte) (Dimensions, error) {
	var (
		dim Dimensions
		err error
	)
	switch Sniff(data) {
	case FormatPNG:
		dim, err = parsePNG(data)
	case FormatJPEG:
		dim, err = parseJPEG(data)
	case FormatGIF:
		dim, err = parseGIF(data)
	case FormatWebP:
		dim, err = parseWebP(data)
	default:
		return Dimensions{}, ErrUnknownFormat
	}
	if err != nil {
		return Dimensions{}, err
	}
	return dim, nil
}

// parsePNG reads the IHDR chunk, which must directly follow the signature.
func parsePNG(data []byte) (Dimensions, error) {
	if len(data) < 24 {
		return Dimensions{}, errors.New("png: truncated before IHDR")
	}
	if string(data[12:16]) != "IHDR" {
		return Dimensions{}, errors.New("png: first chunk is not IHDR")
	}
	return Dimensions{
		Width:  int(binary.BigEndian.Uint32(data[16:20])),
		Height: int(binary.BigEndian.Uint32(data[20:24])),
	}, nil
}

// isSOF reports whether marker starts a frame. DHT (C4), JPG (C8) and DAC (CC)
// share the range but carry no frame header.
func isSOF(marker byte) bool {
	return marker >= 0xC0 && marker <= 0xCF && marker != 0xC4 && marker != 0xC8 && marker != 0xCC
}

// parseJPEG walks the marker segments until the first start-of-frame.
func parseJPEG(data []byte) (Dimensions, error) {
	i := 2
	for i+1 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		switch {
		case marker == 0xFF:
			// Fill byte.
			i++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			// Standalone markers have no length.
			i += 2
			continue
		case isSOF(marker):
			if i+9 > len(data) {
				return Dimensions{}, errors.New("jpeg: truncated frame header")
			}
			return Dimensions{
				Width:  int(binary.BigEndian.Uint16(data[i+7 : i+9])),
				Height: int(binary.BigEndian.Uint16(data[i+5 : i+7])),
			}, nil
		}
		if i+4 > len(data) {
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if segLen < 2 {
			return Dimensions{}, fmt.Errorf("jpeg: bad segment length %d", segLen)
		}
		i += 2 + segLen
	}
	return Dimensions{}, errors.New("jpeg: no frame header")
}

// parseGIF reads the logical screen descriptor.
func parseGIF(data []byte) (Dimensions, error) {
	if len(data) < 10 {
		return Dimensions{}, errors.New("gif: truncated screen descriptor")
	}
	return Dimensions{
		Width:  int(binary.LittleEndian.Uint16(data[6:8])),
		Height: int(binary.LittleEndian.Uint16(data[8:10])),
	}, nil
}

// parseWebP handles the lossy, lossless and extended chunk layouts.
func parseWebP(data []byte) (Dimensions, error) {
	if len(data) < 16 {
		return Dimensions{}, errors.New("webp: truncated chunk header")
	}
	switch chunk := string(data[12:16]); chunk {
	case "VP8 ":
		if len(data) < 30 {
			return Dimensions{}, errors.New("webp: truncated VP8 frame")
		}
		return Dimensions{
			Width:  int(binary.LittleEndian.Uint16(data[26:28]) & 0x3FFF),
			Height: int(binary.LittleEndian.Uint16(data[28:30]) & 0x3FFF),
		}, nil
	case "VP8L":
		if len(data) < 25 {
			return Dimensions{}, errors.New("webp: truncated VP8L header")
		}
		if data[20] != 0x2F {
			return Dimensions{}, errors.New("webp: bad VP8L signature")
		}
		bits := binary.LittleEndian.Uint32(data[21:25])
		return Dimensions{
			Width:  int(bits&0x3FFF) + 1,
			Height: int((bits>>14)&0x3FFF) + 1,
		}, nil
	case "VP8X":
		if len(data) < 30 {
			return Dimensions{}, errors.New("webp: truncated VP8X header")
		}
		return Dimensions{
			Width:  uint24(data[24:27]) + 1,
			Height: uint24(data[27:30]) + 1,
		}, nil
	default:
		return Dimensions{}, fmt.Errorf("webp: unknown chunk %q", chunk)
	}
}

func uint24(b []byte) int {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}
