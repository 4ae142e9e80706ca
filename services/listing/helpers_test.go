package listing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"eventify/models"
)

// memoryPreviews is a PreviewStore that counts stage and release calls.
type memoryPreviews struct {
	mu       sync.Mutex
	next     int
	files    map[string][]byte
	released map[string]int
	failOn   string
}

func newMemoryPreviews() *memoryPreviews {
	return &memoryPreviews{files: map[string][]byte{}, released: map[string]int{}}
}

func (m *memoryPreviews) Stage(_ context.Context, u Upload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && u.Filename == m.failOn {
		return "", fmt.Errorf("disk full")
	}
	data, err := io.ReadAll(u.Content)
	if err != nil {
		return "", err
	}
	m.next++
	handle := fmt.Sprintf("preview-%d", m.next)
	m.files[handle] = data
	return handle, nil
}

func (m *memoryPreviews) Open(handle string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[handle]
	if !ok {
		return nil, ErrPreviewReleased
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryPreviews) Release(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released[handle]++
	if _, ok := m.files[handle]; !ok {
		return ErrPreviewReleased
	}
	delete(m.files, handle)
	return nil
}

func (m *memoryPreviews) live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func uploads(n int) []Upload {
	out := make([]Upload, n)
	for i := range out {
		out[i] = Upload{
			Filename:    fmt.Sprintf("photo-%d.jpg", i),
			ContentType: "image/jpeg",
			Size:        5,
			Content:     strings.NewReader("image"),
		}
	}
	return out
}

func existingImages(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("eventify/services/img-%d", i)
	}
	return out
}

// validDraft returns a create-mode draft that passes Validate against venueFields.
func validDraft() *models.ServiceDraft {
	d := NewDraft("vendor-1")
	d.Title = "Lakeside Lawn"
	d.Description = "Open lawn by the lake"
	d.Category = "venue"
	d.SubCategory = "Lawn"
	d.Location = "Bengaluru"
	d.Details = map[string]models.DetailValue{
		"capacity":        models.NumberValue(300),
		"catering_policy": models.TextValue("In-house only"),
	}
	d.Variants = []models.Variant{{
		Name:   "Full day",
		Unit:   "day",
		Price:  models.Float(25000),
		MinQty: models.Int(1),
	}}
	d.PendingNewFiles = []models.NewFile{{ID: "f1", Filename: "lawn.jpg", Preview: "preview-x"}}
	return d
}

var venueFields = []models.DynamicField{
	{Key: "capacity_section", Label: "Capacity", Type: models.FieldTypeSection, Required: true},
	{Key: "capacity", Label: "Guest capacity", Type: models.FieldTypeNumber, Required: true},
	{Key: "parking", Label: "Parking available", Type: models.FieldTypeBoolean},
	{Key: "catering_policy", Label: "Catering policy", Type: models.FieldTypeText, Required: true},
}
