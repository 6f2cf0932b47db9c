package kyc

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tanacoin/platform/internal/dto"
	"github.com/tanacoin/platform/internal/service/kycservice"
)

func NewMock(t *testing.T) (*KYCHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func multipartRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		assert.NoError(t, err)
		_, err = part.Write(content)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/kyc/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name            string
		fields          map[string]string
		filename        string
		prepareMock     func()
		expectedCode    int
		expectedSuccess bool
		expectedMessage string
	}{
		{
			name:     "Successful upload",
			fields:   map[string]string{"user_id": "1", "document_type": "passport"},
			filename: "passport.png",
			prepareMock: func() {
				service.EXPECT().
					Upload(gomock.Any(), 1, "passport", "passport.png", gomock.Any()).
					Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedSuccess: true,
			expectedMessage: "Document uploaded successfully",
		},
		{
			name:     "Rejected file type",
			fields:   map[string]string{"user_id": "1", "document_type": "passport"},
			filename: "malware.exe",
			prepareMock: func() {
				service.EXPECT().
					Upload(gomock.Any(), 1, "passport", "malware.exe", gomock.Any()).
					Return(kycservice.ErrInvalidFileType)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: kycservice.ErrInvalidFileType.Error(),
		},
		{
			name:            "Missing file",
			fields:          map[string]string{"user_id": "1", "document_type": "passport"},
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Missing required fields.",
		},
		{
			name:            "Non-numeric user id",
			fields:          map[string]string{"user_id": "alice", "document_type": "passport"},
			filename:        "passport.png",
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Missing required fields.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := multipartRequest(t, tt.fields, tt.filename, []byte("file-bytes"))
			rr := httptest.NewRecorder()

			handler.Upload(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp dto.KYCUploadResponseDTO
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedSuccess, resp.Success)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}
