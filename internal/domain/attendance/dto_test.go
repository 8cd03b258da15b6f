package attendance

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestPunchRequest_ValidateIgnoresPhoto(t *testing.T) {
	req := PunchRequest{EmployeeID: "emp-1", EmployeeCode: "E001", PhotoName: "selfie.gif", PhotoSize: MaxPhotoSize + 1}
	assert.NoError(t, req.Validate())

	req.EmployeeCode = ""
	assert.ErrorIs(t, req.Validate(), validator.ErrInvalidInput)
}

func TestPunchRequest_ValidatePhoto(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		size    int64
		wantErr bool
	}{
		{"jpg", "selfie.jpg", 1024, false},
		{"upper case png", "SELFIE.PNG", 1024, false},
		{"jpeg at limit", "selfie.jpeg", MaxPhotoSize, false},
		{"gif", "selfie.gif", 1024, true},
		{"no extension", "selfie", 1024, true},
		{"too large", "selfie.jpg", MaxPhotoSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PunchRequest{PhotoName: tt.file, PhotoSize: tt.size}
			err := req.ValidatePhoto()
			if tt.wantErr {
				assert.ErrorIs(t, err, validator.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
