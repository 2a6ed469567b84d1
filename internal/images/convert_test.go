package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngWithAlpha encodes a small RGBA image with a semi-transparent region
func pngWithAlpha(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvert_FlattensAlpha(t *testing.T) {
	out, err := Convert("test.png", pngWithAlpha(t))
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// Round-trip: the encoded bytes must decode as a JPEG with pixel data
	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.Equal(t, 8, bounds.Dx())
	assert.Equal(t, 8, bounds.Dy())

	// JPEG has no alpha channel; every pixel must be fully opaque
	_, _, _, a := decoded.At(bounds.Min.X, bounds.Min.Y).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestConvert_OpaquePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 200, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := Convert("green.png", buf.Bytes())
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	_, g, _, _ := decoded.At(1, 1).RGBA()
	// Green survives re-encoding within lossy tolerance
	assert.Greater(t, g, uint32(0x9000))
}

func TestConvert_JPEGPassesThrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))

	out, err := Convert("photo.jpg", buf.Bytes())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestConvert_GarbageInput(t *testing.T) {
	_, err := Convert("notes.txt", []byte("this is not an image"))
	require.Error(t, err)
	var ce *ConvertError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "notes.txt", ce.Filename)
}

func TestSEOFilename(t *testing.T) {
	date := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		altText  string
		index    int
		expected string
	}{
		{
			name:     "punctuation stripped and spaces hyphenated",
			altText:  "Best Budget Phone!! 2025",
			index:    3,
			expected: "best-budget-phone-2025-20250615-3.jpg",
		},
		{
			name:     "already clean",
			altText:  "budget smartphones lineup",
			index:    1,
			expected: "budget-smartphones-lineup-20250615-1.jpg",
		},
		{
			name:     "multiple spaces collapsed",
			altText:  "phone   on  desk",
			index:    2,
			expected: "phone-on-desk-20250615-2.jpg",
		},
		{
			name:     "accented letters survive",
			altText:  "Café Phone Setup",
			index:    1,
			expected: "café-phone-setup-20250615-1.jpg",
		},
		{
			name:     "non-latin script survives",
			altText:  "スマホ 比較",
			index:    4,
			expected: "スマホ-比較-20250615-4.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SEOFilename(tt.altText, tt.index, date))
		})
	}
}

func TestSEOFilename_TruncatesLongStem(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	alt := "a very long alt text describing budget smartphones in extreme detail for seo purposes"

	got := SEOFilename(alt, 1, date)
	stem := got[:len(got)-len("-20250615-1.jpg")]
	assert.LessOrEqual(t, len(stem), 50)
	assert.Equal(t, "-20250615-1.jpg", got[len(stem):])
}

func TestSEOFilename_TruncatesOnRuneBoundary(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	alt := strings.Repeat("é", 80)

	got := SEOFilename(alt, 1, date)
	stem := got[:len(got)-len("-20250615-1.jpg")]
	assert.True(t, utf8.ValidString(stem))
	assert.Equal(t, 50, utf8.RuneCountInString(stem))
}
