package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(filename string, size int64, content []byte) *multipart.FileHeader {
	// Create a buffer to write our multipart form
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Create form file
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photo"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	// Parse the multipart form
	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content)) + 1024)
	defer form.RemoveAll()

	if len(form.File["photo"]) > 0 {
		fileHeader := form.File["photo"][0]
		// Override size for testing purposes
		fileHeader.Size = size
		return fileHeader
	}

	return nil
}

func TestValidatePhotoFile_PNG(t *testing.T) {
	content := []byte("fake png content")
	fileHeader := createTestFileHeader("leak.png", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidatePhotoFile(fileHeader)
	assert.NoError(t, err)
}

func TestValidatePhotoFile_JPG(t *testing.T) {
	content := []byte("fake jpg content")
	fileHeader := createTestFileHeader("leak.jpg", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidatePhotoFile(fileHeader)
	assert.NoError(t, err)
}

func TestValidatePhotoFile_UppercaseExtension(t *testing.T) {
	content := []byte("fake jpeg content")
	fileHeader := createTestFileHeader("LEAK.JPEG", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidatePhotoFile(fileHeader)
	assert.NoError(t, err)
}

func TestValidatePhotoFile_FileTooLarge(t *testing.T) {
	// Test with file exceeding size limit (11MB)
	content := []byte("fake png content")
	fileHeader := createTestFileHeader("large.png", 11*1024*1024, content)
	require.NotNil(t, fileHeader)

	err := ValidatePhotoFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "FILE_TOO_LARGE", fileErr.Code)
	assert.Contains(t, fileErr.Message, "File size exceeds maximum allowed size")
}

func TestValidatePhotoFile_InvalidFormat_GIF(t *testing.T) {
	content := []byte("fake gif content")
	fileHeader := createTestFileHeader("leak.gif", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidatePhotoFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "INVALID_FILE_FORMAT", fileErr.Code)
	assert.Contains(t, fileErr.Message, "Only PNG and JPEG files are allowed")
}

func TestValidatePhotoFile_NoExtension(t *testing.T) {
	content := []byte("fake content")
	fileHeader := createTestFileHeader("photofile", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidatePhotoFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "INVALID_FILE_FORMAT", fileErr.Code)
}
