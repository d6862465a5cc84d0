package gallery

import (
	"sync"

	"github.com/gibbs-towing/fleetsite/internal/models"
)

// Publisher holds the committed gallery that visitors see. Commits replace
// the whole list at once.
type Publisher struct {
	images []models.GalleryImage
	mu     sync.RWMutex
}

func NewPublisher(initial []models.GalleryImage) *Publisher {
	return &Publisher{images: models.CloneImages(initial)}
}

func (p *Publisher) Publish(images []models.GalleryImage) {
	next := models.CloneImages(images)
	p.mu.Lock()
	p.images = next
	p.mu.Unlock()
}

// Current returns a copy of the committed list
func (p *Publisher) Current() []models.GalleryImage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return models.CloneImages(p.images)
}
