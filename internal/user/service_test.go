package user

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockGenerateJWT is a helper to override GenerateJWT in tests
var mockGenerateJWT func(id uint) (string, error)

func TestMain(m *testing.M) {
	// Patch GenerateJWT for all tests
	orig := GenerateJWT
	GenerateJWT = func(id uint) (string, error) {
		if mockGenerateJWT != nil {
			return mockGenerateJWT(id)
		}
		return orig(id)
	}
	code := m.Run()
	GenerateJWT = orig
	os.Exit(code)
}

func TestUserService_Signup(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	user := User{ID: 1, Username: "test", Password: "pass"}
	mockRepo.On("CreateUser", user.Username, user.Password).Return(&user, nil)
	mockGenerateJWT = func(id uint) (string, error) { return "token123", nil }

	token, err := service.Signup(user)
	assert.NoError(t, err)
	assert.Equal(t, "token123", token)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	user := User{ID: 2, Username: "foo", Password: "bar"}
	mockRepo.On("ValidateUser", user.Username, user.Password).Return(&user, nil)
	mockGenerateJWT = func(id uint) (string, error) { return "tok456", nil }

	token, err := service.Login(user)
	assert.NoError(t, err)
	assert.Equal(t, "tok456", token)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_InvalidCredentials(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	user := User{Username: "foo", Password: "wrong"}
	mockRepo.On("ValidateUser", user.Username, user.Password).Return(nil, errors.New("record not found"))

	_, err := service.Login(user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestUserService_Signup_Error(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	user := User{ID: 5, Username: "err", Password: "fail"}
	mockRepo.On("CreateUser", user.Username, user.Password).Return(nil, errors.New("fail"))

	_, err := service.Signup(user)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
