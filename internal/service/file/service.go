package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrInvalidImage    = errors.New("photo content is not a readable jpg or png image")
)

// Proof photos are normalized to JPEG inside this size band.
const (
	photoMaxSize    = 150 * 1024
	photoMinSize    = 50 * 1024
	photoTargetSize = 100 * 1024

	startQuality  = 85
	floorQuality  = 50
	qualityStep   = 5
	resizeQuality = 70
)

var allowedPhotoExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type FileService interface {
	// UploadAttendancePhoto normalizes and stores a punch proof photo, returning its reference
	UploadAttendancePhoto(ctx context.Context, employeeID string, workDate time.Time, kind string, file io.Reader, filename string) (string, error)

	// OpenAttendancePhoto opens a stored photo, ErrFileNotFound when the reference is dangling
	OpenAttendancePhoto(ctx context.Context, ref string) (io.ReadCloser, error)

	// DeleteAttendancePhoto removes a photo whose punch was rolled back
	DeleteAttendancePhoto(ctx context.Context, ref string) error
}

type fileServiceImpl struct {
	blobs storage.BlobStore
}

func NewFileService(blobs storage.BlobStore) FileService {
	return &fileServiceImpl{blobs: blobs}
}

func (s *fileServiceImpl) UploadAttendancePhoto(ctx context.Context, employeeID string, workDate time.Time, kind string, file io.Reader, filename string) (string, error) {
	if !allowedPhotoExt[strings.ToLower(filepath.Ext(filename))] {
		return "", ErrInvalidFileType
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	normalized, err := normalizePhoto(raw)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	key := photoKey(employeeID, workDate, kind)
	ref, err := s.blobs.Put(ctx, key, bytes.NewReader(normalized))
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance photo: %w", err)
	}
	return ref, nil
}

func (s *fileServiceImpl) OpenAttendancePhoto(ctx context.Context, ref string) (io.ReadCloser, error) {
	if ref == "" {
		return nil, ErrFileNotFound
	}

	rc, err := s.blobs.Open(ctx, ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open attendance photo: %w", err)
	}
	return rc, nil
}

func (s *fileServiceImpl) DeleteAttendancePhoto(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	return s.blobs.Remove(ctx, ref)
}

// photoKey lays photos out as attendance/{date}/{employee}-{kind}-{uuid}.jpg
func photoKey(employeeID string, workDate time.Time, kind string) string {
	name := fmt.Sprintf("%s-%s-%s.jpg", employeeID, kind, uuid.NewString())
	return path.Join("attendance", workDate.Format(time.DateOnly), name)
}

// normalizePhoto re-encodes an image as JPEG, stepping quality down and
// finally downscaling until it fits under photoMaxSize. A JPEG already in
// band is kept byte for byte; PNG is always converted.
func normalizePhoto(raw []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if format == "jpeg" && inBand(len(raw)) {
		return raw, nil
	}

	var out []byte
	for quality := startQuality; quality >= floorQuality; quality -= qualityStep {
		out, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		// small sources stay small; only oversize output keeps stepping down
		if len(out) <= photoMaxSize {
			return out, nil
		}
	}

	return encodeJPEG(downscale(img, len(out)), resizeQuality)
}

func inBand(size int) bool {
	return size >= photoMinSize && size <= photoMaxSize
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale shrinks img by area towards photoTargetSize, never below 600x400
func downscale(img image.Image, encodedSize int) image.Image {
	ratio := math.Sqrt(float64(photoTargetSize) / float64(encodedSize))
	bounds := img.Bounds()
	width := max(int(float64(bounds.Dx())*ratio), 600)
	height := max(int(float64(bounds.Dy())*ratio), 400)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
