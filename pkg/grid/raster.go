package grid

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Luma returns the 8-bit ITU-R 601-2 luma of an 8-bit RGB triple, rounded
// to nearest: L = R*299/1000 + G*587/1000 + B*114/1000.
func Luma(r, g, b uint8) uint32 {
	return (uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16
}

// FromImage reduces img to a single-channel grid. Gray images keep their
// values; anything else is converted to luma on its non-premultiplied
// color, so alpha does not darken the result.
func FromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image: %w", ErrInvalidInput)
	}
	b := img.Bounds()
	g, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				g.pix[y*g.w+x] = uint32(src.Pix[src.PixOffset(x+b.Min.X, y+b.Min.Y)])
			}
		}
	case *image.NRGBA:
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				i := src.PixOffset(x+b.Min.X, y+b.Min.Y)
				g.pix[y*g.w+x] = Luma(src.Pix[i+0], src.Pix[i+1], src.Pix[i+2])
			}
		}
	default:
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				c := color.NRGBAModel.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.NRGBA)
				g.pix[y*g.w+x] = Luma(c.R, c.G, c.B)
			}
		}
	}
	return g, nil
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP stream into a
// grid and reports the detected format name.
func DecodeImage(r io.Reader) (*Grid, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	g, err := FromImage(img)
	if err != nil {
		return nil, format, err
	}
	return g, format, nil
}

// LoadImage reads and decodes the raster at path.
func LoadImage(path string) (*Grid, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	g, format, err := DecodeImage(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return g, format, nil
}
