package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

const (
	// previewMaxSize is the max dimension of a stored preview thumbnail
	previewMaxSize = 300
	previewQuality = 70
)

// DataURI is a decoded data:<mime>;base64,<payload> string
type DataURI struct {
	MimeType string
	Data     []byte
}

// ParseDataURI decodes a base64 data URI. ok is false for anything else.
func ParseDataURI(s string) (DataURI, bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return DataURI{}, false
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return DataURI{}, false
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return DataURI{}, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURI{}, false
	}
	return DataURI{MimeType: strings.ToLower(mimeType), Data: data}, true
}

// EncodeDataURI is the inverse of ParseDataURI
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// OptimizeImage decodes imageData (PNG, JPEG, GIF), shrinks it so neither side
// exceeds maxDim and re-encodes it as JPEG.
func OptimizeImage(imageData []byte, maxDim, quality int) ([]byte, error) {
	// Decode the image
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Resize image if needed
	resized := img
	if width > maxDim || height > maxDim {
		// imaging keeps the aspect ratio when one side is 0
		if width >= height {
			resized = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resized = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
		log.Debug().
			Str("format", format).
			Int("width", width).
			Int("height", height).
			Int("newWidth", resized.Bounds().Dx()).
			Int("newHeight", resized.Bounds().Dy()).
			Msg("🔄 Resizing preview")
	}

	// Encode to JPEG
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// NormalizePreview turns an image data URI into a JPEG thumbnail data URI.
// The decoded original is returned too so callers can archive it.
// Previews that are not image data URIs, or that fail to decode, are returned unchanged.
func NormalizePreview(preview string) (string, *DataURI) {
	uri, ok := ParseDataURI(preview)
	if !ok || !strings.HasPrefix(uri.MimeType, "image/") {
		return preview, nil
	}

	thumb, err := OptimizeImage(uri.Data, previewMaxSize, previewQuality)
	if err != nil {
		log.Warn().Err(err).Str("mimeType", uri.MimeType).Msg("⚠️  Preview kept as given")
		return preview, &uri
	}
	return EncodeDataURI("image/jpeg", thumb), &uri
}
