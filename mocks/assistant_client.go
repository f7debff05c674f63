package mocks

import (
	"context"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	mock "github.com/stretchr/testify/mock"
)

// NewAssistantClient creates a new instance of AssistantClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAssistantClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *AssistantClient {
	m := &AssistantClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type AssistantClient struct {
	mock.Mock
}

func (_m *AssistantClient) CreateThread(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for CreateThread")
	}
	return ret.String(0), ret.Error(1)
}

func (_m *AssistantClient) AddUserMessage(ctx context.Context, threadID string, content string) error {
	ret := _m.Called(ctx, threadID, content)

	if len(ret) == 0 {
		panic("no return value specified for AddUserMessage")
	}
	return ret.Error(0)
}

func (_m *AssistantClient) CreateRun(ctx context.Context, threadID string, req dtos.RunRequest) (dtos.Run, error) {
	ret := _m.Called(ctx, threadID, req)

	if len(ret) == 0 {
		panic("no return value specified for CreateRun")
	}
	return ret.Get(0).(dtos.Run), ret.Error(1)
}

func (_m *AssistantClient) GetRun(ctx context.Context, threadID string, runID string) (dtos.Run, error) {
	ret := _m.Called(ctx, threadID, runID)

	if len(ret) == 0 {
		panic("no return value specified for GetRun")
	}
	return ret.Get(0).(dtos.Run), ret.Error(1)
}

func (_m *AssistantClient) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	ret := _m.Called(ctx, threadID)

	if len(ret) == 0 {
		panic("no return value specified for LatestAssistantMessage")
	}
	return ret.String(0), ret.Error(1)
}
