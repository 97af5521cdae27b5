package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase/tools/filesystem"

	"membership-system/utils"
)

var (
	ErrNotImage     = errors.New("Il file selezionato non è un'immagine.")
	ErrNotAudio     = errors.New("Il file selezionato non è un file audio.")
	ErrImageTooBig  = errors.New("L'immagine è troppo grande (Max 5MB).")
	ErrInvalidMedia = errors.New("Il file caricato non è valido.")
)

// UploadService stages data-URL encoded media before it is attached to a
// record. Validation failures are rejected before any write happens; the
// staged file and its record are then persisted in a single save, so a
// failed record write leaves no orphaned media behind.
type UploadService struct {
	maxImageSize int64
}

func NewUploadService(maxImageSize int64) *UploadService {
	return &UploadService{maxImageSize: maxImageSize}
}

// StageImage validates and decodes an image data URL (image/*, bounded
// size).
func (s *UploadService) StageImage(dataURL string) (*filesystem.File, error) {
	return s.stage(dataURL, "image/", s.maxImageSize, ErrNotImage)
}

// StageAudio validates and decodes an audio data URL (audio/*, unbounded
// size).
func (s *UploadService) StageAudio(dataURL string) (*filesystem.File, error) {
	return s.stage(dataURL, "audio/", 0, ErrNotAudio)
}

func (s *UploadService) stage(dataURL, mimePrefix string, maxSize int64, typeErr error) (*filesystem.File, error) {
	mime, data, err := decodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(mime, mimePrefix) {
		return nil, typeErr
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, ErrImageTooBig
	}

	code, err := utils.GenerateCode(8)
	if err != nil {
		return nil, fmt.Errorf("generate staged file name: %w", err)
	}

	name := code
	if ext := extensionFor(mime); ext != "" {
		name += "." + ext
	}

	file, err := filesystem.NewFileFromBytes(data, name)
	if err != nil {
		return nil, fmt.Errorf("stage %s upload: %w", mime, err)
	}
	return file, nil
}

// decodeDataURL splits a "data:<mime>;base64,<payload>" string into its
// declared MIME type and decoded bytes.
func decodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, ErrInvalidMedia
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidMedia
	}

	mime, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" || mime == "" {
		return "", nil, ErrInvalidMedia
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrInvalidMedia
	}
	return mime, data, nil
}

func extensionFor(mime string) string {
	_, subtype, _ := strings.Cut(mime, "/")
	switch subtype {
	case "jpeg":
		return "jpg"
	case "svg+xml":
		return "svg"
	case "mpeg":
		return "mp3"
	default:
		return subtype
	}
}
