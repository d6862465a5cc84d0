// Package viewer implements gallery lightbox navigation. It only tracks the
// current position; the image list it is given is never modified.
package viewer

import (
	"fmt"
	"math"

	"github.com/gibbs-towing/fleetsite/internal/models"
)

// SwipeThreshold is the |offset|*velocity a drag must exceed to page.
const SwipeThreshold = 10000

// Lightbox is the state of one open gallery viewer
type Lightbox struct {
	images     []models.GalleryImage
	index      int
	direction  int
	loadFailed bool
}

func New(images []models.GalleryImage) *Lightbox {
	return &Lightbox{images: models.CloneImages(images)}
}

// At returns a lightbox positioned at index, clamped into range.
func At(images []models.GalleryImage, index int) *Lightbox {
	lb := New(images)
	switch {
	case len(lb.images) == 0 || index < 0:
	case index >= len(lb.images):
		lb.index = len(lb.images) - 1
	default:
		lb.index = index
	}
	return lb
}

func (lb *Lightbox) Len() int       { return len(lb.images) }
func (lb *Lightbox) Index() int     { return lb.index }
func (lb *Lightbox) Direction() int { return lb.direction }
func (lb *Lightbox) LoadFailed() bool {
	return lb.loadFailed
}

// Current returns the image at the current index
func (lb *Lightbox) Current() (models.GalleryImage, bool) {
	if len(lb.images) == 0 {
		return models.GalleryImage{}, false
	}
	return lb.images[lb.index], true
}

// Caption is the "n / total" line under the image
func (lb *Lightbox) Caption() string {
	if len(lb.images) == 0 {
		return ""
	}
	return fmt.Sprintf("Logistics Recovery Archive %d / %d", lb.index+1, len(lb.images))
}

// Paginate moves by step, wrapping at both ends.
func (lb *Lightbox) Paginate(step int) {
	lb.direction = step
	n := len(lb.images)
	if n == 0 {
		return
	}
	next := ((lb.index+step)%n + n) % n
	lb.setIndex(next)
}

func (lb *Lightbox) Next() { lb.Paginate(1) }
func (lb *Lightbox) Prev() { lb.Paginate(-1) }

// Jump goes straight to i. The direction only drives the slide animation.
func (lb *Lightbox) Jump(i int) error {
	if i < 0 || i >= len(lb.images) {
		return fmt.Errorf("index %d out of range (have %d images)", i, len(lb.images))
	}
	if i > lb.index {
		lb.direction = 1
	} else {
		lb.direction = -1
	}
	lb.setIndex(i)
	return nil
}

// HandleKey applies a keyboard key. It reports true when the key closes the viewer.
func (lb *Lightbox) HandleKey(key string) (closed bool) {
	switch key {
	case "Escape":
		return true
	case "ArrowLeft":
		lb.Prev()
	case "ArrowRight":
		lb.Next()
	}
	return false
}

// HandleSwipe pages on a horizontal drag that ends with enough power.
// Dragging left shows the next image.
func (lb *Lightbox) HandleSwipe(offsetX, velocityX float64) {
	power := math.Abs(offsetX) * velocityX
	switch {
	case power < -SwipeThreshold:
		lb.Next()
	case power > SwipeThreshold:
		lb.Prev()
	}
}

// MarkLoadFailed shows the placeholder for the current image. There is no
// retry; moving to another image clears it.
func (lb *Lightbox) MarkLoadFailed() {
	lb.loadFailed = true
}

func (lb *Lightbox) setIndex(i int) {
	lb.index = i
	lb.loadFailed = false
}
