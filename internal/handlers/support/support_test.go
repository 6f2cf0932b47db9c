package support

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tanacoin/platform/pkg/utils"
)

func NewMock(t *testing.T) (*SupportHandler, *MockMailer) {
	ctrl := gomock.NewController(t)
	mailer := NewMockMailer(ctrl)
	handler := New(mailer)
	defer ctrl.Finish()
	return handler, mailer
}

func TestContactUsHandler(t *testing.T) {
	handler, mailer := NewMock(t)

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "Message sent",
			body: `{"name":"Alice","email":"alice@example.com","message":"Bonjour"}`,
			prepareMock: func() {
				mailer.EXPECT().SendContactMessage("Alice", "alice@example.com", "Bonjour").Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Your message has been sent successfully!",
		},
		{
			name: "Mailer failure",
			body: `{"name":"Alice","email":"alice@example.com","message":"Bonjour"}`,
			prepareMock: func() {
				mailer.EXPECT().SendContactMessage("Alice", "alice@example.com", "Bonjour").Return(assert.AnError)
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Failed to send your message. Please try again later.",
		},
		{
			name:            "Missing message",
			body:            `{"name":"Alice","email":"alice@example.com"}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Name, email, and message are required.",
		},
		{
			name:            "Malformed body",
			body:            `{broken`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "No input data provided.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/contact-us", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.ContactUs(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp utils.Response
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	handler, _ := NewMock(t)

	rr := httptest.NewRecorder()
	handler.Logout(rr, httptest.NewRequest("GET", "/logout", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp utils.Response
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Logged out successfully", resp.Message)
}

func TestAboutUsHandler(t *testing.T) {
	handler, _ := NewMock(t)

	rr := httptest.NewRecorder()
	handler.AboutUs(rr, httptest.NewRequest("GET", "/about_us", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
