package mocks

import (
	"context"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	mock "github.com/stretchr/testify/mock"
)

// NewImageFetcher creates a new instance of ImageFetcher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewImageFetcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *ImageFetcher {
	m := &ImageFetcher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type ImageFetcher struct {
	mock.Mock
}

func (_m *ImageFetcher) Fetch(ctx context.Context, rawURL string) (dtos.ImageFile, error) {
	ret := _m.Called(ctx, rawURL)

	if len(ret) == 0 {
		panic("no return value specified for Fetch")
	}
	return ret.Get(0).(dtos.ImageFile), ret.Error(1)
}

// NewImageInspector creates a new instance of ImageInspector. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewImageInspector(t interface {
	mock.TestingT
	Cleanup(func())
}) *ImageInspector {
	m := &ImageInspector{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type ImageInspector struct {
	mock.Mock
}

func (_m *ImageInspector) Inspect(data []byte) (dtos.ImageMeta, error) {
	ret := _m.Called(data)

	if len(ret) == 0 {
		panic("no return value specified for Inspect")
	}
	return ret.Get(0).(dtos.ImageMeta), ret.Error(1)
}

func (_m *ImageInspector) PrepareForVision(data []byte, mime string) ([]byte, string, error) {
	ret := _m.Called(data, mime)

	if len(ret) == 0 {
		panic("no return value specified for PrepareForVision")
	}

	var out []byte
	if ret.Get(0) != nil {
		out = ret.Get(0).([]byte)
	}
	return out, ret.String(1), ret.Error(2)
}
