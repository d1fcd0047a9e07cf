package app

import (
	"log"
	"time"

	"github.com/ayusman/glimmer/internal/capture"
	"github.com/ayusman/glimmer/internal/detector"
)

// runPipeline is the detection producer. Each tick it reads one frame, updates
// the capture rate from motion, refreshes the preview, runs hand detection and
// publishes the extracted gesture state.
//
// The rate drops to IdleFPS after IdleAfter without motion and returns to FPS
// on the next moving frame. Every frame read is detected, idle or not.
func (a *App) runPipeline(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	rate := capture.NewRate(a.config.Camera, a.config.IdleAfter, time.Now())
	ticker := time.NewTicker(capture.Interval(rate.FPS()))
	defer ticker.Stop()

	paused := false

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				if !paused {
					paused = true
					a.publish(a.extractor.Update(nil))
					log.Println("Detection paused")
				}
				continue
			}
			if paused {
				paused = false
				a.motion.Reset()
				log.Println("Detection resumed")
			}

			moved, ok := a.processFrame()
			if !ok {
				continue
			}

			if fps, changed := rate.Observe(moved, time.Now()); changed {
				a.camera.SetFPS(fps)
				ticker.Reset(capture.Interval(fps))
				if rate.Idle() {
					log.Printf("No motion, capture slowed to %d fps", fps)
				} else {
					log.Printf("Motion, capture back to %d fps", fps)
				}
			}
		}
	}
}

// processFrame handles one camera frame and reports whether it moved. ok is
// false when no frame could be read. A tick that yields no landmarks, whether
// from a read or detection failure, publishes an absent hand.
func (a *App) processFrame() (moved, ok bool) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		a.publish(a.extractor.Update(nil))
		return false, false
	}
	defer frame.Close()

	moved, _ = a.motion.Detect(frame)

	if err := a.preview.Update(frame); err != nil {
		log.Printf("Error updating preview: %v", err)
	}

	if a.detector == nil {
		return moved, true
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		a.publish(a.extractor.Update(nil))
		return moved, true
	}

	a.publish(a.extractor.Update(detector.First(hands)))
	return moved, true
}
