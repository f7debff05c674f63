package mocks

import (
	"context"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	mock "github.com/stretchr/testify/mock"
)

// NewChatModel creates a new instance of ChatModel. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewChatModel(t interface {
	mock.TestingT
	Cleanup(func())
}) *ChatModel {
	m := &ChatModel{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type ChatModel struct {
	mock.Mock
}

func (_m *ChatModel) Complete(ctx context.Context, req dtos.ChatRequest) (dtos.ChatResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Complete")
	}

	if rf, ok := ret.Get(0).(func(context.Context, dtos.ChatRequest) (dtos.ChatResponse, error)); ok {
		return rf(ctx, req)
	}
	return ret.Get(0).(dtos.ChatResponse), ret.Error(1)
}

func (_m *ChatModel) Name() string {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Name")
	}
	return ret.String(0)
}
