package mocks

import "github.com/stretchr/testify/mock"

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockGenerator) FileName(ext string) string {
	args := m.Called(ext)
	return args.String(0)
}
