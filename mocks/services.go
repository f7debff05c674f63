package mocks

import (
	"context"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	mock "github.com/stretchr/testify/mock"
)

// NewVoiceToneRunner creates a new instance of VoiceToneRunner. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewVoiceToneRunner(t interface {
	mock.TestingT
	Cleanup(func())
}) *VoiceToneRunner {
	m := &VoiceToneRunner{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type VoiceToneRunner struct {
	mock.Mock
}

func (_m *VoiceToneRunner) Run(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResult, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}
	return ret.Get(0).(dtos.VoiceToneResult), ret.Error(1)
}

// NewComplianceService creates a new instance of ComplianceService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewComplianceService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ComplianceService {
	m := &ComplianceService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type ComplianceService struct {
	mock.Mock
}

func (_m *ComplianceService) Check(ctx context.Context, input dtos.CheckInput) (dtos.BrandImageReport, error) {
	ret := _m.Called(ctx, input)

	if len(ret) == 0 {
		panic("no return value specified for Check")
	}
	return ret.Get(0).(dtos.BrandImageReport), ret.Error(1)
}

// NewVoiceToneService creates a new instance of VoiceToneService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewVoiceToneService(t interface {
	mock.TestingT
	Cleanup(func())
}) *VoiceToneService {
	m := &VoiceToneService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type VoiceToneService struct {
	mock.Mock
}

func (_m *VoiceToneService) Analyze(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Analyze")
	}
	return ret.Get(0).(dtos.VoiceToneResponse), ret.Error(1)
}
