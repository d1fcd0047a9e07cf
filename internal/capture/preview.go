package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Preview keeps the most recent frame as JPEG for the MJPEG stream. The
// detection loop writes it; stream handlers read it, so viewers never take
// frames away from detection.
type Preview struct {
	mu      sync.RWMutex
	jpeg    []byte
	seq     uint64
	mirror  bool
	quality int
}

// NewPreview returns an empty preview. mirror flips frames horizontally so the
// picture reads like a mirror.
func NewPreview(mirror bool) *Preview {
	return &Preview{mirror: mirror, quality: 80}
}

// Update encodes frame and replaces the stored image.
func (p *Preview) Update(frame *gocv.Mat) error {
	if frame == nil || frame.Empty() {
		return nil
	}

	src := frame
	if p.mirror {
		flipped := gocv.NewMat()
		defer flipped.Close()
		gocv.Flip(*frame, &flipped, 1)
		src = &flipped
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, *src, []int{int(gocv.IMWriteJpegQuality), p.quality})
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	defer buf.Close()

	p.Store(append([]byte(nil), buf.GetBytes()...))
	return nil
}

// Store replaces the stored image with an already encoded JPEG.
func (p *Preview) Store(jpeg []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jpeg = jpeg
	p.seq++
}

// Latest returns the newest JPEG and its sequence number. The bytes must not be
// modified. A zero sequence means nothing has been captured yet.
func (p *Preview) Latest() ([]byte, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.jpeg, p.seq
}
