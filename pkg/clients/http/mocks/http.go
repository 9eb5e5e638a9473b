package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockHTTP is a mock implementation of the HTTP client
// interface
type MockHTTP struct {
	mock.Mock
}

func (m *MockHTTP) HealthCheckHTTP(uri, method string, headers map[string][]string, body string, codes []int, timeout time.Duration) error {
	args := m.Called(uri, method, headers, body, codes, timeout)

	return args.Error(0)
}
