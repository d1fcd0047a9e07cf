package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ayusman/glimmer/internal/scene"
)

const maxBatchVertices = math.MaxUint16 - 3

// pointBatch collects sprite quads for a single DrawTriangles call.
type pointBatch struct {
	verts []ebiten.Vertex
	inds  []uint16
	// srcSize is the sprite edge length in texels.
	srcSize float32
}

func newPointBatch(capacity int, srcSize float32) *pointBatch {
	return &pointBatch{
		verts:   make([]ebiten.Vertex, 0, capacity*4),
		inds:    make([]uint16, 0, capacity*6),
		srcSize: srcSize,
	}
}

func (b *pointBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

func (b *pointBatch) full() bool {
	return len(b.verts)+4 > maxBatchVertices
}

// add queues a quad of edge size centered on (x, y). Colors are premultiplied.
func (b *pointBatch) add(x, y, size float64, c scene.RGB, alpha float64) {
	half := float32(size / 2)
	fx, fy := float32(x), float32(y)
	a := float32(alpha)
	r, g, bl := float32(c.R)*a, float32(c.G)*a, float32(c.B)*a
	s := b.srcSize

	base := uint16(len(b.verts))
	b.verts = append(b.verts,
		ebiten.Vertex{DstX: fx - half, DstY: fy - half, SrcX: 0, SrcY: 0, ColorR: r, ColorG: g, ColorB: bl, ColorA: a},
		ebiten.Vertex{DstX: fx + half, DstY: fy - half, SrcX: s, SrcY: 0, ColorR: r, ColorG: g, ColorB: bl, ColorA: a},
		ebiten.Vertex{DstX: fx - half, DstY: fy + half, SrcX: 0, SrcY: s, ColorR: r, ColorG: g, ColorB: bl, ColorA: a},
		ebiten.Vertex{DstX: fx + half, DstY: fy + half, SrcX: s, SrcY: s, ColorR: r, ColorG: g, ColorB: bl, ColorA: a},
	)
	b.inds = append(b.inds, base, base+1, base+2, base+1, base+3, base+2)
}

// flush draws everything queued with additive blending and empties the batch.
func (b *pointBatch) flush(dst, sprite *ebiten.Image) {
	if len(b.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	dst.DrawTriangles(b.verts, b.inds, sprite, &op)
	b.reset()
}
