package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

// PromptLine writes prompt to out and reads a full line from reader.
// The returned string is trimmed of surrounding whitespace. A final line
// without a newline is still returned; io.EOF is reported only when
// nothing was read.
func PromptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf behaves like PromptLine but treats a lone "/" as a
// request to pick a file with fzf. When fzf is unavailable or the pick
// is cancelled the prompt is shown again.
func PromptLineOrFzf(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	input, err := PromptLine(reader, out, prompt)
	if err != nil {
		return "", err
	}
	if input == "/" {
		sel, selErr := SelectFileWithFzf(".")
		if selErr == nil && sel != "" {
			fmt.Fprintf(out, " [fzf] %s\n", sel)
			return sel, nil
		}
		return PromptLine(reader, out, prompt)
	}
	return input, nil
}

// rasterFormat sniffs the magic numbers of the raster formats the grid
// package can decode. It returns "" for anything else.
func rasterFormat(b []byte) string {
	switch {
	case bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case bytes.HasPrefix(b, []byte("GIF87a")), bytes.HasPrefix(b, []byte("GIF89a")):
		return "gif"
	case bytes.HasPrefix(b, []byte("BM")):
		return "bmp"
	case bytes.HasPrefix(b, []byte("II*\x00")), bytes.HasPrefix(b, []byte("MM\x00*")):
		return "tiff"
	case len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return "webp"
	}
	return ""
}

// LoadGrid reads path as a raster image when its header matches a known
// format and as a text matrix otherwise. The second result names the
// source format ("text" for matrices).
func LoadGrid(path string) (*grid.Grid, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if f := rasterFormat(b); f != "" {
		g, format, err := grid.DecodeImage(bytes.NewReader(b))
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		return g, format, nil
	}
	g, err := grid.Read(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return g, "text", nil
}

// GetGridInfo returns a short info line for g.
func GetGridInfo(g *grid.Grid, format string) (string, error) {
	s, err := grid.Summarize(g)
	if err != nil {
		return "", err
	}
	kind := "grayscale"
	if s.Binary {
		kind = "binary"
	}
	if format == "" {
		format = "unknown"
	}
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d, Kind: %s", format, s.Width, s.Height, kind), nil
}
