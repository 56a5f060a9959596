package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Davi3103/chamados4/internal/domain"
)

// UploadedFile is one file part of the submission, decoupled from the HTTP
// layer so the pipeline can be exercised without multipart plumbing.
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// AttachmentStatus tells what happened to one uploaded file.
type AttachmentStatus string

const (
	AttachmentStored  AttachmentStatus = "stored"
	AttachmentSkipped AttachmentStatus = "skipped"
)

// Skip reasons recorded on AttachmentResult. The HTTP response never carries
// them; skipped files are simply absent from the stored list.
const (
	SkipReasonUploadFailed   = "upload failed"
	SkipReasonTooLarge       = "file too large"
	SkipReasonTypeNotAllowed = "file type not allowed"
	SkipReasonStorageFailure = "storage failure"
	SkipReasonMetadataFailed = "metadata failure"
)

// AttachmentResult is the typed per-file outcome.
type AttachmentResult struct {
	OriginalName string
	Size         int64
	Status       AttachmentStatus
	SkipReason   string
}

// Stored reports whether the file made it to durable storage.
func (r AttachmentResult) Stored() bool {
	return r.Status == AttachmentStored
}

// processAttachments stores each acceptable file and records its metadata.
// Everything here is best-effort: a failing file is logged, marked skipped and
// the loop moves on. The parent flow never aborts because of attachments.
func (s *IntakeService) processAttachments(ctx context.Context, ticketID int64, files []UploadedFile) []AttachmentResult {
	results := make([]AttachmentResult, 0, len(files))
	for _, file := range files {
		results = append(results, s.processOne(ctx, ticketID, file))
	}
	return results
}

func (s *IntakeService) processOne(ctx context.Context, ticketID int64, file UploadedFile) AttachmentResult {
	result := AttachmentResult{OriginalName: file.Name, Size: file.Size, Status: AttachmentSkipped}

	if file.Name == "" || file.Open == nil {
		result.SkipReason = SkipReasonUploadFailed
		return result
	}
	if reason := s.checkPolicy(file); reason != "" {
		result.SkipReason = reason
		s.logger.Info("attachment skipped",
			zap.String("file", file.Name), zap.String("reason", reason))
		return result
	}

	src, err := file.Open()
	if err != nil {
		result.SkipReason = SkipReasonUploadFailed
		s.logger.Warn("attachment open failed", zap.String("file", file.Name), zap.Error(err))
		return result
	}
	defer src.Close()

	storedName, path, err := s.files.Save(ticketID, file.Name, src)
	if err != nil {
		result.SkipReason = SkipReasonStorageFailure
		s.logger.Warn("attachment write failed", zap.String("file", file.Name), zap.Error(err))
		return result
	}

	record := &domain.Attachment{
		TicketID:     ticketID,
		OriginalName: file.Name,
		StoredName:   storedName,
		ContentType:  file.ContentType,
		Size:         file.Size,
		Path:         path,
	}
	if err := s.attachments.Create(ctx, record); err != nil {
		result.SkipReason = SkipReasonMetadataFailed
		s.logger.Warn("attachment metadata insert failed", zap.String("file", file.Name), zap.Error(err))
		return result
	}

	result.Status = AttachmentStored
	return result
}

func (s *IntakeService) checkPolicy(file UploadedFile) string {
	if s.upload.MaxSizeBytes > 0 && file.Size > s.upload.MaxSizeBytes {
		return SkipReasonTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	if len(s.upload.AllowedExtensions) > 0 && !contains(s.upload.AllowedExtensions, ext) {
		return SkipReasonTypeNotAllowed
	}
	if file.ContentType != "" && len(s.upload.AllowedMimeTypes) > 0 {
		mimeType, _, _ := strings.Cut(file.ContentType, ";")
		if !contains(s.upload.AllowedMimeTypes, strings.TrimSpace(mimeType)) {
			return SkipReasonTypeNotAllowed
		}
	}
	return ""
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}
