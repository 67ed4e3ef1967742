package service

import (
	"errors"

	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// storageErr maps adapter errors to the service taxonomy: a missing record
// becomes NotFound for the named resource, anything else means the backing
// store failed and is surfaced as StorageUnavailable.
func storageErr(err error, resource string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return util.NewNotFound(resource, nil)
	}
	return util.NewStorageUnavailable(err)
}
