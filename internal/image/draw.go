// Package image renders the bot's PNG cards: the daily progress ring, the
// weekly bar chart and the monthly ring grid. Rendering is a pure transform
// from an already-assembled data structure to an encoded PNG; nothing here
// reads storage or talks to Discord.
package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

// Card dimensions, the usual social-card aspect ratio.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630
)

// Draw wraps a gg context with the small drawing vocabulary every card is
// built from. A fresh Draw paints the shared dark gradient background with
// its two glow discs.
type Draw struct {
	W, H float64
	dc   *gg.Context
}

func NewDraw(w, h int) *Draw {
	d := &Draw{W: float64(w), H: float64(h), dc: gg.NewContext(w, h)}
	d.background()
	return d
}

func parseHex(s string) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(float64(v) * a) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: uint8(255 * a)}
}

// LinearGradient builds a two-stop gradient between hex colors.
func LinearGradient(x0, y0, x1, y1 float64, hex0, hex1 string) gg.Gradient {
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	grad.AddColorStop(0, parseHex(hex0))
	grad.AddColorStop(1, parseHex(hex1))
	return grad
}

func (d *Draw) background() {
	key := math.Min(d.W, d.H)
	d.dc.SetFillStyle(LinearGradient(0, 0, d.W, d.H, "#0a0f1f", "#1f3b73"))
	d.dc.DrawRectangle(0, 0, d.W, d.H)
	d.dc.Fill()

	// Two translucent glow discs, top-left green and bottom-right blue.
	d.dc.SetColor(withAlpha(parseHex("#6ee7b7"), 0.12))
	d.dc.DrawCircle(key*0.19, key*0.22, key*0.25)
	d.dc.Fill()
	d.dc.SetColor(withAlpha(parseHex("#93c5fd"), 0.12))
	d.dc.DrawCircle(d.W-key*0.19, d.H-key*0.12, key*0.32)
	d.dc.Fill()
}

// BackgroundCircle paints the dark disc the avatar and the progress widget
// sit on.
func (d *Draw) BackgroundCircle(x, y, radius float64) {
	d.dc.SetFillStyle(LinearGradient(x-radius, y-radius, x+radius, y+radius, "#0b1220", "#0f172a"))
	d.dc.DrawCircle(x, y, radius)
	d.dc.Fill()
}

// AvatarCircle draws img scaled to cover and clipped to a disc. A nil image
// leaves the background disc as-is.
func (d *Draw) AvatarCircle(x, y, radius float64, img image.Image) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	minSide := math.Min(float64(bounds.Dx()), float64(bounds.Dy()))
	scale := 2 * radius / minSide

	d.dc.Push()
	d.dc.DrawCircle(x, y, radius)
	d.dc.Clip()
	d.dc.Translate(x, y)
	d.dc.Scale(scale, scale)
	d.dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)
	d.dc.Pop()
}

// Text draws bold text anchored at (x, y). align is one of "center" and
// "left". Multi-line strings are split on '\n' and vertically centered as a
// block, like the canvas original.
func (d *Draw) Text(text string, x, y float64, hex string, fontSize float64, align string) {
	d.dc.SetFontFace(boldFace(fontSize))
	d.dc.SetColor(parseHex(hex))
	ax := 0.5
	if align == "left" {
		ax = 0
	}

	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		d.dc.DrawStringAnchored(text, x, y, ax, 0.35)
		return
	}
	lineHeight := math.Round(fontSize * 1.2)
	mid := float64(len(lines)-1) / 2
	for i, line := range lines {
		d.dc.DrawStringAnchored(line, x, y+(float64(i)-mid)*lineHeight, ax, 0.35)
	}
}

// Ring strokes a full circle.
func (d *Draw) Ring(x, y, radius, width float64, hex string) {
	d.dc.SetColor(parseHex(hex))
	d.ring(x, y, radius, width)
}

// RingGradient strokes a full circle with a gradient pen.
func (d *Draw) RingGradient(x, y, radius, width float64, grad gg.Gradient) {
	d.dc.SetStrokeStyle(grad)
	d.ring(x, y, radius, width)
}

func (d *Draw) ring(x, y, radius, width float64) {
	d.dc.SetLineWidth(width)
	d.dc.SetLineCapButt()
	d.dc.DrawCircle(x, y, radius)
	d.dc.Stroke()
}

// Arc strokes a partial circle with rounded caps. start and end are turns:
// 0 is 3 o'clock, -0.25 is 12 o'clock, 1 is a full revolution.
func (d *Draw) Arc(x, y, radius, width float64, grad gg.Gradient, start, end float64) {
	d.dc.SetStrokeStyle(grad)
	d.dc.SetLineWidth(width)
	d.dc.SetLineCapRound()
	d.dc.DrawArc(x, y, radius, start*2*math.Pi, end*2*math.Pi)
	d.dc.Stroke()
}

// RoundedRect fills a rounded rectangle with a flat hex color.
func (d *Draw) RoundedRect(x, y, w, h, r float64, hex string) {
	d.dc.SetColor(parseHex(hex))
	d.dc.DrawRoundedRectangle(x, y, w, h, r)
	d.dc.Fill()
}

// RoundedRectGradient fills a rounded rectangle with a gradient.
func (d *Draw) RoundedRectGradient(x, y, w, h, r float64, grad gg.Gradient) {
	d.dc.SetFillStyle(grad)
	d.dc.DrawRoundedRectangle(x, y, w, h, r)
	d.dc.Fill()
}

// HorizontalDashedLine draws the goal marker line across the bar chart.
func (d *Draw) HorizontalDashedLine(x1, x2, y, width float64, hex string) {
	d.dc.Push()
	d.dc.SetColor(parseHex(hex))
	d.dc.SetLineWidth(width)
	d.dc.SetDash(10, 6)
	d.dc.DrawLine(x1, y, x2, y)
	d.dc.Stroke()
	d.dc.SetDash()
	d.dc.Pop()
}

// Image returns the underlying raster.
func (d *Draw) Image() image.Image {
	return d.dc.Image()
}

// PNG encodes the canvas.
func (d *Draw) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
