package imageview

import (
	"image"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/image/draw"
)

const (
	upperHalfBlock = "▀"
	asciiRamp      = " .:-=+*#%@"
)

// Fit modes understood in the "fit" hint.
const (
	FitContain = "contain"
	FitCover   = "cover"
)

// Scaler returns the x/image scaler for a "scaling" hint value.
// Unknown names fall back to CatmullRom.
func Scaler(name string) draw.Scaler {
	switch strings.ToLower(name) {
	case "nearest":
		return draw.NearestNeighbor
	case "approx", "approxbilinear":
		return draw.ApproxBiLinear
	case "bilinear":
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}

// Scale resizes src to fit a grid of cols x rows terminal cells. Each cell
// holds two vertically stacked pixels, so the result is at most cols x 2*rows
// pixels.
func Scale(src image.Image, cols, rows int, fit string, scaler draw.Scaler) image.Image {
	b := src.Bounds()
	if cols <= 0 || rows <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	maxW, maxH := cols, rows*2
	sx := float64(maxW) / float64(b.Dx())
	sy := float64(maxH) / float64(b.Dy())

	srcRect := b
	var w, h int
	if fit == FitCover {
		s := max(sx, sy)
		cropW := int(float64(maxW) / s)
		cropH := int(float64(maxH) / s)
		x0 := b.Min.X + (b.Dx()-cropW)/2
		y0 := b.Min.Y + (b.Dy()-cropH)/2
		srcRect = image.Rect(x0, y0, x0+cropW, y0+cropH)
		w, h = maxW, maxH
	} else {
		s := min(sx, sy)
		w = max(1, int(float64(b.Dx())*s))
		h = max(1, int(float64(b.Dy())*s))
	}
	if h%2 == 1 {
		h++
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler.Scale(dst, dst.Bounds(), src, srcRect, draw.Over, nil)
	return dst
}

// HalfBlocks draws img with one upper-half block per cell: the foreground is
// the top pixel and the background the bottom pixel. With noColor the cells
// become an ASCII luminance ramp.
func HalfBlocks(img image.Image, noColor bool) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.At(x, y)
			bottom := color.Color(color.Black)
			if y+1 < b.Max.Y {
				bottom = img.At(x, y+1)
			}
			if noColor {
				sb.WriteByte(rampChar(top, bottom))
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(opaque(top)).
				Background(opaque(bottom)).
				Render(upperHalfBlock))
		}
	}
	return sb.String()
}

// opaque flattens c over black.
func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}

func rampChar(top, bottom color.Color) byte {
	l := (luminance(top) + luminance(bottom)) / 2
	idx := int(l * float64(len(asciiRamp)-1))
	return asciiRamp[idx]
}

// luminance returns the relative luminance of c in [0,1], premultiplied by alpha.
func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
}
