package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
)

// AttachmentStore decides where resume bytes live. Stash runs before the application insert,
// Discard undoes it when the insert fails, Open returns the exact bytes that were stashed.
type AttachmentStore interface {
	Stash(ctx context.Context, applicationID string, att *model.Attachment) error
	Open(ctx context.Context, att *model.Attachment) ([]byte, error)
	Discard(ctx context.Context, att *model.Attachment) error
}

// InlineAttachments keeps the bytes inside the application record.
type InlineAttachments struct{}

var _ AttachmentStore = InlineAttachments{}

func (InlineAttachments) Stash(context.Context, string, *model.Attachment) error { return nil }

func (InlineAttachments) Open(_ context.Context, att *model.Attachment) ([]byte, error) {
	if !att.Present() || att.StorageKey != "" {
		return nil, apperr.NotFound("resume not found")
	}
	return att.Data, nil
}

func (InlineAttachments) Discard(context.Context, *model.Attachment) error { return nil }

// ObjectAttachments uploads the bytes to object storage under resumes/<applicationID><ext>
// and keeps only the key in the record.
type ObjectAttachments struct {
	store Storage
}

var _ AttachmentStore = (*ObjectAttachments)(nil)

func NewObjectAttachments(store Storage) *ObjectAttachments {
	return &ObjectAttachments{store: store}
}

func (o *ObjectAttachments) Stash(ctx context.Context, applicationID string, att *model.Attachment) error {
	if !att.Present() {
		return apperr.New(apperr.KindMissingAttachment, "resume is required", nil)
	}
	key := ObjectKey(applicationID, att.Filename)
	_, err := o.store.Put(ctx, key, bytes.NewReader(att.Data), PutObjectOptions{
		Size:        int64(len(att.Data)),
		ContentType: att.ContentType,
		Metadata:    map[string]string{filenameMeta: att.Filename},
	})
	if err != nil {
		return apperr.Persistence("failed to store resume", err)
	}
	att.StorageKey = key
	return nil
}

func (o *ObjectAttachments) Open(ctx context.Context, att *model.Attachment) ([]byte, error) {
	if att == nil || att.StorageKey == "" {
		// Records written before the object backend was enabled still carry their bytes.
		return InlineAttachments{}.Open(ctx, att)
	}
	rc, _, err := o.store.Get(ctx, att.StorageKey)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, apperr.NotFound("resume not found")
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load resume", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperr.Persistence("failed to read resume", err)
	}
	return data, nil
}

func (o *ObjectAttachments) Discard(ctx context.Context, att *model.Attachment) error {
	if att == nil || att.StorageKey == "" {
		return nil
	}
	if err := o.store.Delete(ctx, att.StorageKey); err != nil {
		return fmt.Errorf("delete resume object %s: %w", att.StorageKey, err)
	}
	return nil
}

// ObjectKey returns the bucket key for an application's resume, keeping the original extension.
func ObjectKey(applicationID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return "resumes/" + applicationID + ext
}
