package kycservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
)

type KYCRepo interface {
	Upsert(ctx context.Context, doc *domain.KYCDocument) error
	FindByUserID(ctx context.Context, userID int) ([]domain.KYCDocument, error)
}

type Service struct {
	kycRepo   KYCRepo
	uploadDir string
}

func New(kycRepo KYCRepo, uploadDir string) *Service {
	return &Service{
		kycRepo:   kycRepo,
		uploadDir: uploadDir,
	}
}

var (
	ErrInvalidFileType     = errors.New("invalid file type. Allowed types: png, jpg, jpeg, pdf")
	ErrInvalidDocumentType = errors.New("invalid document type")
)

var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "pdf": true,
}

var validDocumentTypes = map[string]bool{
	"id_front": true, "id_back": true, "selfie": true,
	"proof_of_address": true, "passport": true, "other": true,
}

const (
	StatusNotStarted = "not_started"
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

// Upload stores the document under a per-user folder with an unguessable
// filename and upserts its database row. Re-uploading a document type resets
// its review status to pending.
func (s *Service) Upload(ctx context.Context, userID int, documentType, filename string, file io.Reader) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedExtensions[ext] {
		return ErrInvalidFileType
	}
	if !validDocumentTypes[documentType] {
		return ErrInvalidDocumentType
	}

	userDir := filepath.Join(s.uploadDir, strconv.Itoa(userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return fmt.Errorf("can't create upload folder: %w", err)
	}

	path := filepath.Join(userDir, fmt.Sprintf("%s_%s.%s", documentType, strings.ReplaceAll(uuid.NewString(), "-", ""), ext))
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't save file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return fmt.Errorf("can't save file: %w", err)
	}

	doc := &domain.KYCDocument{
		UserID:       userID,
		DocumentType: documentType,
		FilePath:     path,
		Status:       StatusPending,
	}
	if err := s.kycRepo.Upsert(ctx, doc); err != nil {
		zap.L().Error("can't record kyc document",
			zap.Int("userID", userID),
			zap.String("documentType", documentType),
			zap.Error(err))
		os.Remove(path)
		return err
	}

	zap.L().Info("kyc document uploaded",
		zap.Int("userID", userID),
		zap.String("documentType", documentType))
	return nil
}

// Status aggregates a user's documents into one verification state: approved
// only when every document is, rejected as soon as one is.
func (s *Service) Status(ctx context.Context, userID int) (string, []domain.KYCDocument, error) {
	docs, err := s.kycRepo.FindByUserID(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if len(docs) == 0 {
		return StatusNotStarted, nil, nil
	}

	status := StatusApproved
	for _, doc := range docs {
		if doc.Status == StatusRejected {
			return StatusRejected, docs, nil
		}
		if doc.Status != StatusApproved {
			status = StatusPending
		}
	}
	return status, docs, nil
}
