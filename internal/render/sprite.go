package render

import "github.com/hajimehoshi/ebiten/v2"

const dotSize = 32

// dotPixels returns premultiplied RGBA for a white disc with a soft edge.
func dotPixels(n int) []byte {
	pix := make([]byte, n*n*4)
	c := float64(n-1) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx, dy := (float64(x)-c)/c, (float64(y)-c)/c
			d2 := dx*dx + dy*dy
			a := 1 - d2
			if a < 0 {
				a = 0
			}
			a *= a
			v := byte(a * 255)
			i := (y*n + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	return pix
}

func newDot() *ebiten.Image {
	img := ebiten.NewImage(dotSize, dotSize)
	img.WritePixels(dotPixels(dotSize))
	return img
}
