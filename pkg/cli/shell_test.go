package cli

import (
	"bytes"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

func scriptedShell(script string, cfg Config) (*shell, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	sh := newShell(strings.NewReader(script), &out, &errOut, log.New(io.Discard, "", 0), cfg)
	sh.useFzf = false
	return sh, &out, &errOut
}

func TestShellOpenApplySave(t *testing.T) {
	in := writeFile(t, "in.txt", constantMatrix(9, 100))
	outPath := filepath.Join(t.TempDir(), "out.txt")
	script := strings.Join([]string{
		"o " + in,
		"/adaptive",
		"", "", "", // window, k, epsilon take the configured defaults
		"i",
		"s " + outPath,
		"q",
	}, "\n") + "\n"

	sh, out, errOut := scriptedShell(script, Config{UpdateRepo: DefaultUpdateRepo})
	require.NoError(t, sh.run(""))
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "Applied adaptive")
	assert.Contains(t, out.String(), "Kind: binary")
	assert.Contains(t, out.String(), "Exiting...")

	g, err := grid.Load(outPath)
	require.NoError(t, err)
	want, _ := grid.Filled(9, 9, 0)
	want.Set(4, 4, 255)
	assert.True(t, want.Equal(g), "saved grid:\n%s", g)
}

func TestShellNumberedSelectionUsesConfig(t *testing.T) {
	in := writeFile(t, "in.txt", "10 200\n130 50\n")
	threshold := uint32(100)
	script := "/\n2\n\np\nq\n"

	sh, out, errOut := scriptedShell(script, Config{Threshold: &threshold})
	require.NoError(t, sh.run(in))
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "threshold (uint) [100]")
	assert.Equal(t, [][]uint32{{0, 255}, {255, 0}}, sh.cur.Rows())
}

func TestShellRejectsBadInput(t *testing.T) {
	in := writeFile(t, "in.txt", "1 2\n3 4\n")
	sh, out, errOut := scriptedShell("/\n/adaptive\nz\nq\n", Config{})
	require.NoError(t, sh.run(""))
	assert.Contains(t, out.String(), "No grid loaded")
	assert.Contains(t, out.String(), "press h for help")
	assert.Empty(t, errOut.String())

	sh, out, errOut = scriptedShell("/adaptive\n0\n\n\n/otsu\nq\n", Config{})
	require.NoError(t, sh.run(in))
	assert.Contains(t, errOut.String(), "input validation error")
	assert.Contains(t, out.String(), "unknown command: otsu")
	assert.Equal(t, [][]uint32{{1, 2}, {3, 4}}, sh.cur.Rows())
}

func TestShellStopsAtEOF(t *testing.T) {
	sh, out, _ := scriptedShell("h", Config{})
	require.NoError(t, sh.run(""))
	assert.Contains(t, out.String(), "q  - quit")
}
