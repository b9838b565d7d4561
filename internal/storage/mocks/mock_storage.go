package mocks

import (
	"context"
	"io"

	"applyapi/internal/model"
	"applyapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Stash(ctx context.Context, applicationID string, att *model.Attachment) error {
	args := m.Called(ctx, applicationID, att)
	return args.Error(0)
}

func (m *MockAttachmentStore) Open(ctx context.Context, att *model.Attachment) ([]byte, error) {
	args := m.Called(ctx, att)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAttachmentStore) Discard(ctx context.Context, att *model.Attachment) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}
