package script

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpfielding/ime.go/pkg/ime"
	"github.com/jpfielding/ime.go/pkg/imageio"
	"github.com/jpfielding/ime.go/pkg/logging"
	"github.com/jpfielding/ime.go/pkg/store"
	"github.com/jpfielding/ime.go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPixels(width, height int) [][][]float32 {
	out := make([][][]float32, height)
	for y := range out {
		out[y] = make([][]float32, width)
		for x := range out[y] {
			out[y][x] = []float32{float32(20 + x*10), float32(40 + y*10), 120}
		}
	}
	return out
}

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, imageio.Save(filepath.Join(dir, "koala.ppm"), testPixels(12, 8)))
	var out bytes.Buffer
	r := NewRunner(store.New(logging.Nop()), &out, logging.Nop())
	r.Dir = dir
	return r, &out, dir
}

func TestExecute_Ignored(t *testing.T) {
	r, _, _ := newTestRunner(t)
	for _, line := range []string{"", "   ", "# comment", "#load a b"} {
		msg, err := r.Execute(context.Background(), line)
		assert.NoError(t, err, line)
		assert.Empty(t, msg, line)
	}
	_, err := r.Execute(context.Background(), "exit")
	assert.ErrorIs(t, err, ErrExit)
}

func TestExecute_Errors(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx := context.Background()
	_, err := r.Execute(ctx, "load koala.ppm koala")
	require.NoError(t, err)

	tests := []struct {
		line string
		want error
	}{
		{"frobnicate a b", ErrUnknownCommand},
		{"blur koala", ErrTokenCount},
		{"blur koala out extra", ErrTokenCount},
		{"horizontal-flip koala out split 50", ErrTokenCount},
		{"blur koala out divide 50", ErrTokenCount},
		{"brighten lots koala out", ErrArgument},
		{"brighten NaN koala out", ErrArgument},
		{"brighten -Inf koala out", ErrArgument},
		{"levels-adjust 1 x 3 koala out", ErrArgument},
		{"compress most koala out", ErrArgument},
		{"blur koala out split half", ErrArgument},
		{"resize 0 10 koala out", ErrArgument},
		{"run", ErrTokenCount},
		{"run missing.txt", ErrArgument},
		{"load koala", ErrTokenCount},
		{"blur ghost out", store.ErrImageNotFound},
		{"levels-adjust 100 80 200 koala out", ime.ErrLevels},
		{"blur koala out split 150", ime.ErrPercent},
		{"compress 101 koala out", ime.ErrPercent},
		{"load nothing.gif x", imageio.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, []string{"koala"}, r.Store.Names())
}

func TestExecute_Brighten(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx := context.Background()
	_, err := r.Execute(ctx, "load koala.ppm koala")
	require.NoError(t, err)

	msg, err := r.Execute(ctx, "brighten 10.5 koala bright")
	require.NoError(t, err)
	assert.Equal(t, "brighten operation completed successfully for koala & put in bright", msg)

	src, _ := r.Store.Get("koala")
	got, _ := r.Store.Get("bright")
	assert.True(t, src.Brighten(10.5).Equal(got, 0))
}

func TestExecute_SplitPreview(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx := context.Background()
	_, err := r.Execute(ctx, "load koala.ppm koala")
	require.NoError(t, err)

	for _, line := range []string{
		"blur koala a split 50",
		"sharpen koala b split 25",
		"sepia koala c split 0",
		"value-component koala d split 100",
		"luma-component koala e split 10",
		"intensity-component koala f split 90",
		"color-correct koala g split 50",
		"levels-adjust 10 120 240 koala h split 50",
	} {
		msg, err := r.Execute(ctx, line)
		require.NoError(t, err, line)
		assert.Contains(t, msg, "previewed", line)
	}

	src, _ := r.Store.Get("koala")
	sepia, _ := r.Store.Get("c")
	assert.True(t, src.Equal(sepia, 0), "split 0 leaves the image untouched")

	value, _ := r.Store.Get("d")
	assert.True(t, src.ValueImage().Equal(value, 0), "split 100 transforms everything")

	blurred, _ := r.Store.Get("a")
	want, err := store.Preview(src, ime.OpBlur, 50)
	require.NoError(t, err)
	assert.True(t, want.Equal(blurred, 0))
}

func TestRun_Script(t *testing.T) {
	r, out, dir := newTestRunner(t)
	script := `# exercise every command
load koala.ppm koala
brighten -20 koala dark
blur koala soft
sharpen koala crisp
sepia koala old
horizontal-flip koala mirrored
vertical-flip koala upside
value-component koala value
luma-component koala luma
intensity-component koala intensity
red-component koala red
green-component koala green
blue-component koala blue
color-correct koala corrected
levels-adjust 20 100 255 koala levels
compress 50 koala small
rgb-split koala r g b
rgb-combine back r g b
histogram koala hist
resize 6 4 koala tiny
save out.png back

exit
blur koala never
`
	require.NoError(t, r.Run(context.Background(), strings.NewReader(script)))

	for _, name := range []string{"dark", "soft", "crisp", "old", "mirrored", "upside", "value",
		"luma", "intensity", "red", "green", "blue", "corrected", "levels", "small",
		"r", "g", "b", "back", "hist", "tiny"} {
		assert.True(t, r.Store.Has(name), name)
	}
	assert.False(t, r.Store.Has("never"))

	hist, _ := r.Store.Get("hist")
	assert.Equal(t, store.HistogramSize, hist.Width())
	tiny, _ := r.Store.Get("tiny")
	assert.Equal(t, 6, tiny.Width())
	assert.Equal(t, 4, tiny.Height())

	saved, err := imageio.Load(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	assert.Equal(t, testPixels(12, 8), saved)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 21)
	assert.Equal(t, "loaded koala.ppm as koala", lines[0])
}

func TestRun_ContinuesOrStops(t *testing.T) {
	script := "load koala.ppm koala\nblur ghost x\nblur koala y\n"

	r, out, _ := newTestRunner(t)
	require.NoError(t, r.Run(context.Background(), strings.NewReader(script)))
	assert.True(t, r.Store.Has("y"))
	assert.Contains(t, out.String(), "image not found")

	r, _, _ = newTestRunner(t)
	r.Strict = true
	err := r.Run(context.Background(), strings.NewReader(script))
	assert.ErrorIs(t, err, store.ErrImageNotFound)
	assert.Contains(t, err.Error(), "line 2")
	assert.False(t, r.Store.Has("y"))
}

func TestRun_Nested(t *testing.T) {
	r, out, dir := newTestRunner(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inner.txt"),
		[]byte("load koala.ppm koala\nexit\nblur koala never\n"), 0o644))

	require.NoError(t, r.Run(context.Background(), strings.NewReader("run inner.txt\nblur koala soft\n")))
	assert.True(t, r.Store.Has("soft"))
	assert.False(t, r.Store.Has("never"))
	assert.Contains(t, out.String(), "script inner.txt complete")
}

func TestRun_NestingLimit(t *testing.T) {
	r, out, dir := newTestRunner(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loop.txt"), []byte("run loop.txt\n"), 0o644))

	require.NoError(t, r.RunFile(context.Background(), filepath.Join(dir, "loop.txt")))
	assert.Contains(t, out.String(), ErrNesting.Error())

	r.Strict = true
	assert.ErrorIs(t, r.RunFile(context.Background(), filepath.Join(dir, "loop.txt")), ErrNesting)
}

func TestRunFile_Fingerprint(t *testing.T) {
	r, _, dir := newTestRunner(t)
	var logs bytes.Buffer
	r.log = logging.Logger(&logs, true, slog.LevelInfo)
	content := "load koala.ppm koala\nblur koala soft\n"
	path := filepath.Join(dir, "soft.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, r.RunFile(context.Background(), path))
	assert.True(t, r.Store.Has("soft"))

	id := Fingerprint([]byte(content))
	assert.Equal(t, util.HashUUID(content), id)
	assert.NotEqual(t, id, Fingerprint([]byte("load koala.ppm koala\n")))
	assert.Contains(t, logs.String(), `"script":"`+id+`"`)
	assert.Contains(t, logs.String(), `"msg":"running script"`)
}

func TestRun_Cancelled(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx, strings.NewReader("load koala.ppm koala\n")), context.Canceled)
	assert.Zero(t, r.Store.Len())
}

func TestLoadSave_PathWithSpaces(t *testing.T) {
	r, _, dir := newTestRunner(t)
	ctx := context.Background()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "my pics"), 0o755))
	require.NoError(t, imageio.Save(filepath.Join(dir, "my pics", "a b.bmp"), testPixels(3, 2)))

	_, err := r.Execute(ctx, "load my pics/a b.bmp spaced")
	require.NoError(t, err)
	_, err = r.Execute(ctx, "save my pics/copy.tiff spaced")
	require.NoError(t, err)

	got, err := imageio.Load(filepath.Join(dir, "my pics", "copy.tiff"))
	require.NoError(t, err)
	assert.Equal(t, testPixels(3, 2), got)
}

func TestCommands(t *testing.T) {
	names := Commands()
	assert.Contains(t, names, "exit")
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "levels-adjust")
	assert.Len(t, names, 23)
}
