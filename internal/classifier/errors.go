package classifier

import (
	"errors"
	"fmt"
)

// ErrNoModels is returned when a decision is requested from an empty pool.
var ErrNoModels = errors.New("classifier pool has no models")

// ErrUnknownKind indicates a model file declares a kind with no registered
// decoder.
var ErrUnknownKind = errors.New("unknown model kind")

// ErrModelLoad indicates a model artifact could not be turned into a
// Classifier. It is fatal at pool build time.
type ErrModelLoad struct {
	ID   string
	Path string
	Err  error
}

func (e *ErrModelLoad) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("load model %q from %s: %v", e.ID, e.Path, e.Err)
	}
	return fmt.Sprintf("load model from %s: %v", e.Path, e.Err)
}

func (e *ErrModelLoad) Unwrap() error { return e.Err }
