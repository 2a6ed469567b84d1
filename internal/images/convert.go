// Package images prepares uploaded image files for the WordPress media
// library: re-encoding to a web-friendly format and deriving SEO filenames.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	// Registered decoders for the accepted upload formats.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// jpegQuality is the fixed quality factor for re-encoded images.
const jpegQuality = 85

// ContentType is the MIME type of re-encoded images.
const ContentType = "image/jpeg"

// Ext is the file extension of re-encoded images.
const Ext = "jpg"

// ConvertError represents a failure to decode or re-encode an image
type ConvertError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *ConvertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image conversion failed for %s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("image conversion failed for %s: %s", e.Filename, e.Message)
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// Convert re-encodes an uploaded image as JPEG at the fixed quality factor.
// Palette and alpha color modes are flattened onto a white background first,
// since JPEG carries no alpha channel.
func Convert(filename string, data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ConvertError{Filename: filename, Message: "unrecognized image data", Cause: err}
	}

	flattened := flatten(src)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, flattened, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, &ConvertError{Filename: filename, Message: "JPEG encoding failed", Cause: err}
	}

	return out.Bytes(), nil
}

// flatten composites the source image over a white background, producing a
// plain RGB-style image regardless of the source color model.
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Over)
	return dst
}
