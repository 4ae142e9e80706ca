package publisher

import "errors"

// ErrUnknownImage rejects a removal that names an image the listing does not have.
var ErrUnknownImage = errors.New("unknown image")
