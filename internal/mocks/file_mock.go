package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockFileOperations is a mock implementation of the FileOperations interface
type MockFileOperations struct {
	mock.Mock
}

func (m *MockFileOperations) IsFileExists(filePath string) (bool, error) {
	args := m.Called(filePath)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileOperations) ReadYamlFile(filePath string, v any) error {
	args := m.Called(filePath, v)
	return args.Error(0)
}

func (m *MockFileOperations) EnsureDir(dirPath string) error {
	args := m.Called(dirPath)
	return args.Error(0)
}

func (m *MockFileOperations) CreateFile(filePath string, data string) error {
	args := m.Called(filePath, data)
	return args.Error(0)
}
