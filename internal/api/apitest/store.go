package apitest

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harrylevesque/gallery/internal/models"
)

// Upload records one file received by the fake service.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
}

// Store is the in-memory image list behind the fake service.
type Store struct {
	mu      sync.RWMutex
	images  []models.Image
	uploads []Upload
}

// Add appends an image, assigning a uuid when ID is empty.
func (s *Store) Add(img models.Image) models.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	if img.ID == "" {
		img.ID = models.ImageID(uuid.NewString())
	}
	s.images = append(s.images, img)
	return img
}

// GetAll returns a copy of the current list in insertion order.
func (s *Store) GetAll() []models.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Image, len(s.images))
	copy(out, s.images)
	return out
}

// Delete removes the image with id, reporting whether it existed.
func (s *Store) Delete(id models.ImageID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, img := range s.images {
		if img.ID == id {
			s.images = append(s.images[:i], s.images[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) recordUpload(u Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, u)
}

// Uploads returns every file the service accepted.
func (s *Store) Uploads() []Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}
