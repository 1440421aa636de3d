package terrain

import (
	"image"
	"image/color"
)

// Mask is the per-body occupancy bitmap. Texel (0,0) is the bottom-left
// corner and rows grow upward, matching world space.
type Mask struct {
	width  int
	height int
	alpha  []float32
	color  []color.NRGBA
}

// NewMask creates an empty width x height mask.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := width * height
	return &Mask{
		width:  width,
		height: height,
		alpha:  make([]float32, n),
		color:  make([]color.NRGBA, n),
	}
}

// NewMaskFromImage duplicates img into a new mask. Image row 0 is the top
// row, so rows are flipped on the way in.
func NewMaskFromImage(img image.Image) *Mask {
	if img == nil {
		return NewMask(0, 0)
	}
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for row := 0; row < m.height; row++ {
		y := m.height - 1 - row
		for x := 0; x < m.width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+row)).(color.NRGBA)
			m.Set(x, y, c)
		}
	}
	return m
}

func (m *Mask) Width() int {
	if m == nil {
		return 0
	}
	return m.width
}

func (m *Mask) Height() int {
	if m == nil {
		return 0
	}
	return m.height
}

// Len returns the occupancy buffer length, always Width()*Height().
func (m *Mask) Len() int {
	if m == nil {
		return 0
	}
	return len(m.alpha)
}

func (m *Mask) InBounds(x, y int) bool {
	return m != nil && x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Mask) index(x, y int) int {
	return y*m.width + x
}

// Alpha returns the translucency of a texel in [0,1], or 0 out of bounds.
func (m *Mask) Alpha(x, y int) float32 {
	if !m.InBounds(x, y) {
		return 0
	}
	return m.alpha[m.index(x, y)]
}

func (m *Mask) Solid(x, y int) bool {
	return m.Alpha(x, y) > 0
}

// Color returns the stored colour of a texel.
func (m *Mask) Color(x, y int) color.NRGBA {
	if !m.InBounds(x, y) {
		return color.NRGBA{}
	}
	return m.color[m.index(x, y)]
}

// Set writes a texel; its alpha is derived from c.A.
func (m *Mask) Set(x, y int, c color.NRGBA) {
	if !m.InBounds(x, y) {
		return
	}
	i := m.index(x, y)
	m.color[i] = c
	m.alpha[i] = float32(c.A) / 255
}

// Clear empties a texel and reports whether it was solid before.
func (m *Mask) Clear(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	i := m.index(x, y)
	if m.alpha[i] <= 0 {
		return false
	}
	m.alpha[i] = 0
	m.color[i] = color.NRGBA{}
	return true
}

// CountSolid rescans the whole buffer.
func (m *Mask) CountSolid() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, a := range m.alpha {
		if a > 0 {
			n++
		}
	}
	return n
}

func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}
	out := &Mask{
		width:  m.width,
		height: m.height,
		alpha:  make([]float32, len(m.alpha)),
		color:  make([]color.NRGBA, len(m.color)),
	}
	copy(out.alpha, m.alpha)
	copy(out.color, m.color)
	return out
}

// Image renders the mask top row first, ready for display or encoding.
func (m *Mask) Image() *image.NRGBA {
	if m == nil {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	m.WritePix(img.Pix)
	return img
}

// WritePix fills an NRGBA pixel buffer of len Width*Height*4, top row first.
func (m *Mask) WritePix(pix []byte) {
	if m == nil || len(pix) < len(m.alpha)*4 {
		return
	}
	for y := 0; y < m.height; y++ {
		row := m.height - 1 - y
		for x := 0; x < m.width; x++ {
			i := m.index(x, y)
			o := (row*m.width + x) * 4
			c := m.color[i]
			if m.alpha[i] <= 0 {
				c = color.NRGBA{}
			}
			pix[o+0] = c.R
			pix[o+1] = c.G
			pix[o+2] = c.B
			pix[o+3] = c.A
		}
	}
}
