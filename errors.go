package gallery

import (
	"errors"
	"fmt"
)

var (
	ErrNoFileProvided   = errors.New("no file provided")
	ErrImageNotFound    = errors.New("image not found")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// BlobStoreError indicates the blob store collaborator failed or returned an
// unusable result. An upload that fails here never inserts a record.
type BlobStoreError struct {
	Op  string
	Err error
}

func (e *BlobStoreError) Error() string {
	return fmt.Sprintf("blob store %s failed: %v", e.Op, e.Err)
}

func (e *BlobStoreError) Unwrap() error {
	return e.Err
}

// RecordInsertError indicates the record store did not return a created row
// for a blob that was already written. The orphaned blob is left behind.
type RecordInsertError struct {
	Err error
}

func (e *RecordInsertError) Error() string {
	return fmt.Sprintf("record insert failed: %v", e.Err)
}

func (e *RecordInsertError) Unwrap() error {
	return e.Err
}
