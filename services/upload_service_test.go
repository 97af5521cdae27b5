package services

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataURL(mime string, payload []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestUploadService_StageImage(t *testing.T) {
	svc := NewUploadService(5 * 1024 * 1024)

	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	file, err := svc.StageImage(dataURL("image/png", payload))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Name, ".png"), "got %q", file.Name)
	assert.Equal(t, int64(len(payload)), file.Size)
}

func TestUploadService_StageImageRejectsNonImage(t *testing.T) {
	svc := NewUploadService(5 * 1024 * 1024)

	_, err := svc.StageImage(dataURL("application/pdf", []byte("%PDF")))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestUploadService_StageImageRejectsOversize(t *testing.T) {
	svc := NewUploadService(16)

	_, err := svc.StageImage(dataURL("image/jpeg", make([]byte, 17)))
	assert.ErrorIs(t, err, ErrImageTooBig)
}

func TestUploadService_StageAudioIsUnbounded(t *testing.T) {
	svc := NewUploadService(16)

	file, err := svc.StageAudio(dataURL("audio/mpeg", make([]byte, 1024)))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Name, ".mp3"), "got %q", file.Name)
}

func TestUploadService_StageAudioRejectsNonAudio(t *testing.T) {
	svc := NewUploadService(16)

	_, err := svc.StageAudio(dataURL("image/png", []byte{1, 2, 3}))
	assert.ErrorIs(t, err, ErrNotAudio)
}

func TestUploadService_RejectsMalformedDataURL(t *testing.T) {
	svc := NewUploadService(16)

	cases := []string{
		"",
		"non-un-data-url",
		"data:image/png;base64",          // missing payload separator
		"data:;base64,QUJD",              // missing mime
		"data:image/png,QUJD",            // missing base64 marker
		"data:image/png;base64,!!!not64", // invalid encoding
	}
	for _, c := range cases {
		_, err := svc.StageImage(c)
		assert.ErrorIs(t, err, ErrInvalidMedia, "input %q", c)
	}
}
