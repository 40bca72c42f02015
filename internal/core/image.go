package core

import (
	"errors"
	"os"
)

// LocalImage is a fetched image stored in a temporary file owned by one job.
type LocalImage struct {
	Path      string
	SourceURI string
	Size      int64
}

// Remove deletes the backing file. A file that is already gone is not an error.
func (li *LocalImage) Remove() error {
	if li == nil || li.Path == "" {
		return nil
	}
	if err := os.Remove(li.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
