package grid

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestLuma(t *testing.T) {
	assert.Equal(t, uint32(0), Luma(0, 0, 0))
	assert.Equal(t, uint32(255), Luma(255, 255, 255))
	assert.Equal(t, uint32(76), Luma(255, 0, 0))
	assert.Equal(t, uint32(150), Luma(0, 255, 0))
	assert.Equal(t, uint32(29), Luma(0, 0, 255))
}

func TestFromImageGrayKeepsValues(t *testing.T) {
	img := image.NewGray(image.Rect(2, 3, 5, 5))
	for y := 3; y < 5; y++ {
		for x := 2; x < 5; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x*10 + y)})
		}
	}
	g, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, [][]uint32{{23, 33, 43}, {24, 34, 44}}, g.Rows())
}

func TestFromImageIgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 10})
	g, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, uint32(200), g.At(0, 0))

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 128})
	g, err = FromImage(rgba)
	require.NoError(t, err)
	assert.InDelta(t, 200, float64(g.At(0, 0)), 2)
}

func TestDecodeImageFormats(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 30)
	}
	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}
	for name, enc := range encoders {
		var buf bytes.Buffer
		require.NoError(t, enc(&buf), name)
		g, format, err := DecodeImage(&buf)
		require.NoError(t, err, name)
		assert.Equal(t, name, format)
		assert.Equal(t, [][]uint32{{0, 30, 60, 90}, {120, 150, 180, 210}}, g.Rows(), name)
	}
	_, _, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
