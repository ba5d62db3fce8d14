package frame

import (
	"fmt"
	"image"
	"image/color"
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestApplyIdentity(t *testing.T) {
	src := solidFrame(4, 4, color.NRGBA{10, 20, 30, 255})
	out := Apply(src, Options{Brightness: 1, Contrast: 1, Saturation: 1})
	assert.Equal(t, src.Pix, out.Pix)
}

func TestApplyBrightness(t *testing.T) {
	src := solidFrame(2, 2, color.NRGBA{10, 20, 30, 255})
	out := Apply(src, Options{Brightness: 2, Contrast: 1, Saturation: 1})

	got := out.NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{20, 40, 60, 255}, got)
}

func TestApplyContrastClamps(t *testing.T) {
	src := solidFrame(2, 2, color.NRGBA{200, 100, 10, 255})
	out := Apply(src, Options{
		Brightness: 1, Contrast: 2, ContrastOffset: -50, Saturation: 1,
	})

	// 2*200-50 = 350 -> 255, 2*100-50 = 150, 2*10-50 = -30 -> 0.
	got := out.NRGBAAt(1, 1)
	assert.Equal(t, color.NRGBA{255, 150, 0, 255}, got)
}

func TestApplyTint(t *testing.T) {
	src := solidFrame(2, 2, color.NRGBA{100, 100, 250, 255})
	out := Apply(src, Options{
		Brightness: 1, Contrast: 1, Saturation: 1,
		TintR: 10, TintG: 80, TintB: 30, TintWeight: 0.5,
	})

	// 100+5 = 105, 100+40 = 140, 250+15 = 265 -> 255.
	got := out.NRGBAAt(0, 1)
	assert.Equal(t, color.NRGBA{105, 140, 255, 255}, got)
}

func TestApplySaturationKeepsGray(t *testing.T) {
	src := solidFrame(2, 2, color.NRGBA{120, 120, 120, 255})
	out := Apply(src, Options{Brightness: 1, Contrast: 1, Saturation: 0.5})

	got := out.NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{120, 120, 120, 255}, got)
}

func TestDefaultOptionsPipeline(t *testing.T) {
	// Pure black under the standard settings: the contrast pass clamps to
	// zero and the tint then leans the pixel green.
	black := solidFrame(2, 2, color.NRGBA{0, 0, 0, 255})
	out := Apply(black, DefaultOptions())
	got := out.NRGBAAt(0, 0)

	assert.True(t, got.G > 0)
	assert.True(t, got.B > 0)
	assert.True(t, got.R < got.G)
	assert.Equal(t, uint8(255), got.A)
}

func TestSequenceNames(t *testing.T) {
	seq := &Sequence{InPrefix: "in/tr", OutPrefix: "out/fl"}
	assert.Equal(t, "in/tr0042.png", seq.InName(42))
	assert.Equal(t, "out/fl0999.png", seq.OutName(999))
	assert.Equal(t, "in/tr1234.png", seq.InName(1234))
}

func TestSequenceRun(t *testing.T) {
	dir, err := ioutil.TempDir("", "turbvis_frame_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	in := path.Join(dir, "in")
	out := path.Join(dir, "out")

	for i := 3; i < 6; i++ {
		img := solidFrame(4, 4, color.NRGBA{10, 20, 30, 255})
		require.NoError(t, imaging.Save(img, frameName(in, i)))
	}

	seq := &Sequence{
		InPrefix: in, OutPrefix: out,
		Start: 3, End: 6,
		Opt: Options{Brightness: 2, Contrast: 1, Saturation: 1},
	}
	require.NoError(t, seq.Run())

	for i := 3; i < 6; i++ {
		img, err := imaging.Open(frameName(out, i))
		require.NoError(t, err)
		r, g, b, _ := img.At(0, 0).RGBA()
		assert.Equal(t, uint32(20), r>>8)
		assert.Equal(t, uint32(40), g>>8)
		assert.Equal(t, uint32(60), b>>8)
	}

	// A missing frame aborts the run.
	seq.Start, seq.End = 3, 8
	assert.Error(t, seq.Run())

	// Invalid ranges are rejected up front.
	seq.Start, seq.End = 5, 5
	assert.Error(t, seq.Run())
}

func frameName(prefix string, i int) string {
	return fmt.Sprintf("%s%04d.png", prefix, i)
}
