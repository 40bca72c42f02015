package escpos

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleCommands(t *testing.T) {
	assert.Equal(t, []byte{0x1b, '@'}, Initialize())
	assert.Equal(t, []byte{0x1b, 'a', 1}, Align(AlignCenter))
	assert.Equal(t, []byte{0x1b, 'd', 3}, Feed(3))
	assert.Nil(t, Feed(0))
	assert.Equal(t, []byte{0x1b, 'd', 255}, Feed(400))
	assert.Equal(t, []byte{0x1d, 'V', 0}, Cut(CutFull))
	assert.Equal(t, []byte{0x1d, 'V', 1}, Cut(CutPartial))
}

func TestParseImageMode(t *testing.T) {
	for _, s := range []string{"S8", "D8", "S24", "D24", "raster"} {
		m, err := ParseImageMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, ImageMode(s), m)
	}
	_, err := ParseImageMode("d24")
	assert.Error(t, err)
}

func TestThreshold(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.Black)
	img.Set(1, 0, color.White)
	img.Set(2, 0, color.NRGBA{A: 0})

	bm := Threshold(img)
	assert.Equal(t, 3, bm.Width)
	assert.Equal(t, 1, bm.Height)
	assert.Equal(t, []bool{true, false, false}, bm.Pix)
	assert.False(t, bm.At(10, 10))
}

func TestImage_D24(t *testing.T) {
	// 2x24: first column fully black, second column blank.
	bm := &Bitmap{Width: 2, Height: 24, Pix: make([]bool, 48)}
	for y := 0; y < 24; y++ {
		bm.Pix[y*2] = true
	}

	out, err := Image(bm, ModeD24)
	require.NoError(t, err)

	want := []byte{0x1b, '3', 24, 0x1b, '*', 33, 2, 0}
	want = append(want, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, '\n')
	want = append(want, 0x1b, '2')
	assert.Equal(t, want, out)
}

func TestImage_S8PadsLastBand(t *testing.T) {
	// Height 10 needs two 8-dot bands; only the top dot of column 0 is set.
	bm := &Bitmap{Width: 1, Height: 10, Pix: make([]bool, 10)}
	bm.Pix[0] = true

	out, err := Image(bm, ModeS8)
	require.NoError(t, err)

	want := []byte{0x1b, '3', 16,
		0x1b, '*', 0, 1, 0, 0x80, '\n',
		0x1b, '*', 0, 1, 0, 0x00, '\n',
		0x1b, '2'}
	assert.Equal(t, want, out)
}

func TestImage_Raster(t *testing.T) {
	// 9 dots wide -> 2 bytes per row.
	bm := &Bitmap{Width: 9, Height: 1, Pix: make([]bool, 9)}
	bm.Pix[0] = true
	bm.Pix[8] = true

	out, err := Image(bm, ModeRaster)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1d, 'v', '0', 0, 2, 0, 1, 0, 0x80, 0x80}, out)
}

func TestImage_Errors(t *testing.T) {
	_, err := Image(&Bitmap{}, ModeD24)
	assert.Error(t, err)

	_, err = Image(&Bitmap{Width: 1, Height: 1, Pix: []bool{true}}, ImageMode("X"))
	assert.Error(t, err)
}

func TestImage_LineSpacingPerMode(t *testing.T) {
	bm := &Bitmap{Width: 1, Height: 1, Pix: []bool{true}}

	tests := []struct {
		mode    ImageMode
		spacing byte
	}{
		{ModeS8, 16},
		{ModeD8, 16},
		{ModeS24, 24},
		{ModeD24, 24},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			out, err := Image(bm, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, []byte{0x1b, '3', tt.spacing}, out[:3])
			assert.Equal(t, []byte{0x1b, '2'}, out[len(out)-2:])
		})
	}
}
