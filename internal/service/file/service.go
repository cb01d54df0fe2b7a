package file

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FileService interface {
	// UploadAttendanceReport stores an exported workbook for month (YYYY-MM)
	UploadAttendanceReport(ctx context.Context, month string, file io.Reader) (string, error)

	// Generic operations
	OpenFile(ctx context.Context, key string) (io.ReadCloser, error)
	GetFileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
	newID   func() string
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		newID:   func() string { return uuid.New().String() },
	}
}

// UploadAttendanceReport writes reports/attendance/{month}/{uuid}.xlsx
func (s *fileServiceImpl) UploadAttendanceReport(ctx context.Context, month string, file io.Reader) (string, error) {
	if _, ok := validator.IsValidMonth(month); !ok {
		return "", fmt.Errorf("%w: report month %q", storage.ErrInvalidPath, month)
	}
	key := path.Join("reports", "attendance", month, s.newID()+".xlsx")

	uploadedPath, err := s.storage.Upload(ctx, file, key, xlsxContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance report: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) OpenFile(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, key)
}

func (s *fileServiceImpl) GetFileURL(key string) string {
	return s.storage.URL(key)
}
