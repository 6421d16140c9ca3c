// Package render provides gradient strip rendering using fogleman/gg.
package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"sync"

	"github.com/fogleman/gg"

	"github.com/hueflow/server/pkg/colorconv"
	"github.com/hueflow/server/pkg/gradient"
)

// ErrEmptyStrip reports a render request with no colors.
var ErrEmptyStrip = errors.New("render: no colors to draw")

// Config contains renderer configuration.
type Config struct {
	StripWidth  int
	StripHeight int
}

// StripRenderer renders horizontal gradient strips as PNG images.
type StripRenderer struct {
	config      Config
	contextPool sync.Pool
	bufferPool  sync.Pool
}

// NewStripRenderer creates a new strip renderer.
func NewStripRenderer(cfg Config) *StripRenderer {
	return &StripRenderer{
		config: cfg,
		contextPool: sync.Pool{
			New: func() interface{} {
				return gg.NewContext(cfg.StripWidth, cfg.StripHeight)
			},
		},
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 32*1024))
			},
		},
	}
}

// RenderStrip draws the given colors as equal-width swatches across
// the strip and returns the encoded PNG.
func (r *StripRenderer) RenderStrip(colors []string) ([]byte, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyStrip
	}

	swatches := make([]colorconv.RGB, len(colors))
	for i, hex := range colors {
		c, err := colorconv.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		swatches[i] = c
	}

	dc := r.contextPool.Get().(*gg.Context)
	defer r.contextPool.Put(dc)

	dc.SetColor(color.White)
	dc.Clear()

	width := float64(r.config.StripWidth)
	height := float64(r.config.StripHeight)
	swatchWidth := width / float64(len(swatches))

	for i, c := range swatches {
		dc.SetRGB255(c.R, c.G, c.B)
		// Overdraw by a pixel so rounding never leaves white seams.
		dc.DrawRectangle(float64(i)*swatchWidth, 0, swatchWidth+1, height)
		dc.Fill()
	}

	return r.encodeContext(dc)
}

// RenderRamp draws a smooth two-endpoint gradient, one interpolated
// color per pixel column.
func (r *StripRenderer) RenderRamp(fromHex, toHex string) ([]byte, error) {
	columns, err := gradient.Gradient(fromHex, toHex, r.config.StripWidth)
	if err != nil {
		return nil, err
	}
	return r.RenderStrip(columns)
}

func (r *StripRenderer) encodeContext(dc *gg.Context) ([]byte, error) {
	buf := r.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		r.bufferPool.Put(buf)
	}()

	// Use fast PNG encoder
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(buf, dc.Image()); err != nil {
		return nil, err
	}

	// Copy buffer contents (buffer will be reused)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
