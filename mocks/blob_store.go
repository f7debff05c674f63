package mocks

import (
	"context"
	"io"

	mock "github.com/stretchr/testify/mock"
)

// NewBlobStore creates a new instance of BlobStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewBlobStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *BlobStore {
	m := &BlobStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type BlobStore struct {
	mock.Mock
}

func (_m *BlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	ret := _m.Called(ctx, key, body, size, contentType)

	if len(ret) == 0 {
		panic("no return value specified for Put")
	}
	return ret.String(0), ret.Error(1)
}
