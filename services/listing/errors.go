package listing

import (
	"errors"
	"fmt"
)

// MaxImages is the largest number of images a listing may carry.
const MaxImages = 10

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDraftNotFound   = errors.New("draft not found")
	ErrPreviewReleased = errors.New("preview already released")
	ErrInvalidDraft    = errors.New("draft is not valid")
)

// CapacityError rejects a batch of files that would push a listing over the image cap.
// The draft is left unchanged when it is returned.
type CapacityError struct {
	Limit     int
	Current   int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("you can upload at most %d images (currently %d, tried to add %d)", e.Limit, e.Current, e.Requested)
}

func indexError(what string, index, length int) error {
	return fmt.Errorf("%s %d of %d: %w", what, index, length, ErrIndexOutOfRange)
}
