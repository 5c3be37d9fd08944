// Package caption draws text labels over frames before they are recorded.
package caption

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// for drawing text over the image.
var (
	defaultFont font.Face
	white       = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	black       = color.RGBA{0x00, 0x00, 0x00, 0xFF}
)

func init() {
	fo, _ := truetype.Parse(gomono.TTF)
	defaultFont = truetype.NewFace(fo, &truetype.Options{
		Size: 32.0,
	})
}

// Label draws the label onto the bottom-left corner of the image.
func Label(i draw.Image, label string) {
	d := &font.Drawer{
		Dst:  i,
		Face: defaultFont,
	}

	imX := i.Bounds().Min.X
	imY := i.Bounds().Max.Y

	// draw the text in black first to create a faux-border.
	for xx := -2; xx < 2; xx++ {
		for yy := -2; yy < 2; yy++ {
			d.Src = image.NewUniform(black)
			d.Dot = fixed.P(imX-xx, imY-yy)
			d.DrawString(label)
		}
	}

	// draw the text in white in the centre.
	d.Src = image.NewUniform(white)
	d.Dot = fixed.P(imX, imY)
	d.DrawString(label)
}
