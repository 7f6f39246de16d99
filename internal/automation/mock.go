package automation

import (
	"image"

	"github.com/stretchr/testify/mock"
)

// MockKeyboard is a mock implementation of Keyboard for testing.
//
// Usage:
//
//	kb := new(MockKeyboard)
//	kb.On("Press", "enter").Return(nil)
//	// ... exercise code under test ...
//	kb.AssertExpectations(t)
type MockKeyboard struct {
	mock.Mock
}

func (m *MockKeyboard) Press(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockKeyboard) Combo(keys ...string) error {
	args := m.Called(keys)
	return args.Error(0)
}

func (m *MockKeyboard) Type(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

// MockMouse is a mock implementation of Mouse for testing.
type MockMouse struct {
	mock.Mock
}

func (m *MockMouse) Click(button Button) error {
	args := m.Called(button)
	return args.Error(0)
}

func (m *MockMouse) ClickAt(x, y int, button Button) error {
	args := m.Called(x, y, button)
	return args.Error(0)
}

func (m *MockMouse) DoubleClick() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMouse) MoveTo(x, y int) error {
	args := m.Called(x, y)
	return args.Error(0)
}

func (m *MockMouse) Position() (image.Point, error) {
	args := m.Called()
	return args.Get(0).(image.Point), args.Error(1)
}

func (m *MockMouse) Scroll(direction ScrollDirection, amount int) error {
	args := m.Called(direction, amount)
	return args.Error(0)
}

func (m *MockMouse) Hold(button Button) error {
	args := m.Called(button)
	return args.Error(0)
}

func (m *MockMouse) Release(button Button) error {
	args := m.Called(button)
	return args.Error(0)
}

// MockClipboard is a mock implementation of Clipboard for testing.
type MockClipboard struct {
	mock.Mock
}

func (m *MockClipboard) Copy(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

func (m *MockClipboard) Paste() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MockLauncher is a mock implementation of Launcher for testing.
type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) Open(target string) error {
	args := m.Called(target)
	return args.Error(0)
}

func (m *MockLauncher) Run(name string, cmdArgs ...string) error {
	args := m.Called(name, cmdArgs)
	return args.Error(0)
}
