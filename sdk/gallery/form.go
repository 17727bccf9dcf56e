package sdk

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
)

const (
	MaxStagedFiles = 5
	MaxFileSize    = 5 * 1024 * 1024
)

var acceptedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidationError is a client-side rejection. It never causes a network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StagedFile is one file selected for upload, held in memory until submit.
type StagedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// UploadForm stages files and validates them before anything touches the
// network. An ImageSet bound at construction receives every record created by
// a successful submit.
type UploadForm struct {
	client *Client
	set    *ImageSet

	staged  []StagedFile
	lastErr *ValidationError
}

func NewUploadForm(client *Client, set *ImageSet) *UploadForm {
	return &UploadForm{
		client: client,
		set:    set,
	}
}

// Stage validates a selection against the files already staged and appends it
// when every file passes. A rejected selection leaves the staged list
// untouched; the previous error state clears only on a valid selection.
func (f *UploadForm) Stage(files ...StagedFile) error {
	if len(files)+len(f.staged) > MaxStagedFiles {
		return f.fail(fmt.Sprintf("you can only upload up to %d images, you already have %d images", MaxStagedFiles, len(f.staged)))
	}

	for _, file := range files {
		if _, ok := acceptedImageTypes[file.ContentType]; !ok {
			return f.fail("only JPG, JPEG, and PNG files are allowed")
		}
	}

	for _, file := range files {
		if len(file.Content) > MaxFileSize {
			return f.fail("each file must be less than 5MB")
		}
	}

	f.staged = append(f.staged, files...)
	f.lastErr = nil

	return nil
}

func (f *UploadForm) fail(reason string) error {
	f.lastErr = &ValidationError{Reason: reason}
	return f.lastErr
}

// Unstage drops a staged file by index before submission.
func (f *UploadForm) Unstage(index int) {
	if index < 0 || index >= len(f.staged) {
		return
	}

	f.staged = append(f.staged[:index], f.staged[index+1:]...)
}

// Staged returns a copy of the currently staged files.
func (f *UploadForm) Staged() []StagedFile {
	staged := make([]StagedFile, len(f.staged))
	copy(staged, f.staged)

	return staged
}

// ValidationMessage reports the message of the last rejected selection, or an
// empty string after a valid one.
func (f *UploadForm) ValidationMessage() string {
	if f.lastErr == nil {
		return ""
	}

	return f.lastErr.Reason
}

// Submit uploads the staged files one at a time. Each failure is collected
// independently and the failed file stays staged so it can be retried; each
// success is appended to the bound ImageSet and removed from staging.
func (f *UploadForm) Submit(ctx context.Context, username, email string) []error {
	if err := validateUploader(username, email); err != nil {
		return []error{err}
	}

	if len(f.staged) == 0 {
		return []error{&ValidationError{Reason: "please upload at least one image"}}
	}

	var errs []error
	remaining := make([]StagedFile, 0, len(f.staged))

	for _, file := range f.staged {
		record, err := f.client.UploadImage(ctx, file, username, email)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to upload %s: %w", file.Name, err))
			remaining = append(remaining, file)
			continue
		}

		f.set.AddImages(record)
	}

	f.staged = remaining

	return errs
}

// validateUploader checks the optional uploader fields the way the upload
// form does: both may be absent, but a provided value must be well formed.
func validateUploader(username, email string) error {
	if username != "" {
		if len(username) < 3 {
			return &ValidationError{Reason: "username must be at least 3 characters"}
		}
		if !usernamePattern.MatchString(username) {
			return &ValidationError{Reason: "username must be alphanumeric"}
		}
	}

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return &ValidationError{Reason: "invalid email format"}
		}
	}

	return nil
}
