package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"printshop/internal/apperrors"
	"printshop/internal/logger"

	"github.com/google/uuid"
)

var (
	ErrNoFileSelected      = fmt.Errorf("%w: no file selected", apperrors.ErrValidation)
	ErrFileTooLarge        = fmt.Errorf("%w: file exceeds the upload limit", apperrors.ErrValidation)
	ErrInvalidPath         = fmt.Errorf("%w: invalid stored filename", apperrors.ErrValidation)
	ErrUnreadablePageCount = fmt.Errorf("%w: could not read the page count, upload a PDF document", apperrors.ErrIO)
	ErrFileMissing         = fmt.Errorf("%w: document file is missing", apperrors.ErrNotFound)
)

// Document describes an ingested upload
type Document struct {
	StoredFilename   string
	OriginalFilename string
	Pages            int
}

// LocalStorage keeps uploaded documents in a single directory.
type LocalStorage struct {
	basePath string
	maxBytes int64
	counter  PageCounter
}

// NewLocalStorage ensures basePath exists. A maxBytes of zero disables the size limit.
func NewLocalStorage(basePath string, maxBytes int64, counter PageCounter) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory %s: %w", basePath, err)
	}
	if counter == nil {
		counter = NewPDFPageCounter()
	}
	logger.Info().Str("path", abs).Msg("Upload directory ensured")
	return &LocalStorage{basePath: abs, maxBytes: maxBytes, counter: counter}, nil
}

// Ingest saves the upload under a sanitised unique name and counts its pages.
// The stored file is removed again when the page count cannot be read.
func (ls *LocalStorage) Ingest(fileHeader *multipart.FileHeader) (*Document, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return nil, ErrNoFileSelected
	}
	if ls.maxBytes > 0 && fileHeader.Size > ls.maxBytes {
		return nil, ErrFileTooLarge
	}
	clean := SecureFilename(fileHeader.Filename)
	if clean == "" {
		return nil, ErrNoFileSelected
	}
	stored := uuid.NewString() + "_" + clean
	dstPath := filepath.Join(ls.basePath, stored)

	if err := ls.write(fileHeader, dstPath); err != nil {
		return nil, err
	}

	pages, err := ls.counter.CountPages(dstPath)
	if err != nil || pages <= 0 {
		_ = os.Remove(dstPath)
		logger.Warn().Err(err).Str("filename", fileHeader.Filename).Int("pages", pages).Msg("Rejected upload with unreadable page count")
		return nil, ErrUnreadablePageCount
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", stored).Int("pages", pages).Msg("Document stored")
	return &Document{StoredFilename: stored, OriginalFilename: fileHeader.Filename, Pages: pages}, nil
}

func (ls *LocalStorage) write(fileHeader *multipart.FileHeader, dstPath string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("%w: failed to open uploaded file: %v", apperrors.ErrIO, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to create file on server: %v", apperrors.ErrIO, err)
	}

	var r io.Reader = src
	if ls.maxBytes > 0 {
		r = io.LimitReader(src, ls.maxBytes+1)
	}
	n, err := io.Copy(dst, r)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("%w: failed to save file: %v", apperrors.ErrIO, err)
	}
	if ls.maxBytes > 0 && n > ls.maxBytes {
		_ = os.Remove(dstPath)
		return ErrFileTooLarge
	}
	return nil
}

// Path resolves a stored filename inside the upload directory.
func (ls *LocalStorage) Path(stored string) (string, error) {
	if stored == "" || stored == "." || stored == ".." || filepath.Base(stored) != stored || strings.ContainsAny(stored, `/\`) {
		return "", ErrInvalidPath
	}
	p := filepath.Join(ls.basePath, stored)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return "", ErrFileMissing
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrIO, err)
	}
	return p, nil
}

// Remove deletes a stored document; a missing file is not an error.
func (ls *LocalStorage) Remove(stored string) error {
	if stored == "" || filepath.Base(stored) != stored {
		return ErrInvalidPath
	}
	if err := os.Remove(filepath.Join(ls.basePath, stored)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
