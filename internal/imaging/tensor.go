package imaging

import (
	"fmt"
	"image"
	"strings"
)

// Layout is the memory order of an image tensor.
type Layout string

const (
	// NCHW stores channels as planes: [1, 3, H, W].
	NCHW Layout = "nchw"
	// NHWC interleaves channels per pixel: [1, H, W, 3].
	NHWC Layout = "nhwc"
)

// ParseLayout accepts either layout name in any case.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(s)); l {
	case NCHW, NHWC:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
	}
}

// Normalization maps 8-bit channel values to model inputs as (v/255 - Mean) / Std.
type Normalization struct {
	Mean [3]float32
	Std  [3]float32
}

// UnitRange keeps values in [0, 1].
var UnitRange = Normalization{Std: [3]float32{1, 1, 1}}

// Tensor describes a packed image batch of one.
type Tensor struct {
	Data   []float32
	Shape  []int64
	Layout Layout
}

// Pack resizes img to size x size and packs it into a tensor.
func Pack(img image.Image, size int, layout Layout, norm Normalization) (*Tensor, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid tensor size %d", size)
	}
	if layout != NCHW && layout != NHWC {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}

	rgba := Resize(img, size, size)
	plane := size * size
	data := make([]float32, 3*plane)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := rgba.PixOffset(x, y)
			px := rgba.Pix[off : off+3 : off+3]
			for c := 0; c < 3; c++ {
				v := (float32(px[c])/255 - norm.Mean[c]) / norm.Std[c]
				if layout == NCHW {
					data[c*plane+y*size+x] = v
				} else {
					data[(y*size+x)*3+c] = v
				}
			}
		}
	}

	t := &Tensor{Data: data, Layout: layout}
	if layout == NCHW {
		t.Shape = []int64{1, 3, int64(size), int64(size)}
	} else {
		t.Shape = []int64{1, int64(size), int64(size), 3}
	}
	return t, nil
}

// ChannelMeans returns the mean of each colour channel of a packed tensor.
func ChannelMeans(data []float32, layout Layout) ([3]float64, error) {
	var sums [3]float64
	if len(data) == 0 || len(data)%3 != 0 {
		return sums, ErrEmptyTensor
	}

	plane := len(data) / 3
	switch layout {
	case NHWC:
		for i, v := range data {
			sums[i%3] += float64(v)
		}
	case NCHW:
		for i, v := range data {
			sums[i/plane] += float64(v)
		}
	default:
		return sums, fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}

	for c := range sums {
		sums[c] /= float64(plane)
	}
	return sums, nil
}
