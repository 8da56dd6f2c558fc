package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goliatone/go-credlink/pkg/model"
)

// UploadTimeout bounds how long a single transfer may take before it is
// treated as failed and surfaced as a retryable error.
const UploadTimeout = 60 * time.Second

// UploadRequest describes one file handed to the upload collaborator.
type UploadRequest struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Uploader is the external storage collaborator: it transfers a file and
// hands back the stored record.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (model.UploadedFile, error)
}

// AddUpload transfers one file through the collaborator under the bounded
// wait and, on success, commits the record to the session's upload list. A
// transfer that exceeds the bound returns ErrUploadTimeout and commits
// nothing: no partial or duplicate entries on timeout.
func (s *Session) AddUpload(ctx context.Context, uploader Uploader, req UploadRequest) (model.UploadedFile, error) {
	if uploader == nil {
		return model.UploadedFile{}, errors.New("wizard: uploader is required")
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	file, err := uploader.Upload(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return model.UploadedFile{}, fmt.Errorf("%w: %s", ErrUploadTimeout, req.Name)
		}
		return model.UploadedFile{}, fmt.Errorf("wizard: upload %q: %w", req.Name, err)
	}

	s.uploads = append(s.uploads, file)
	return file, nil
}
