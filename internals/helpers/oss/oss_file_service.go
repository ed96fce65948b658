package helper

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"sarpras_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/*
BlobService adalah facade upload/hapus lampiran yang seragam untuk controller.

- UploadAttachment(ctx, schoolID, fh) -> (publicURL, objectKey, contentType, err)
  gambar di-recompress ke WebP, dokumen/spreadsheet diupload apa adanya.
- OwnedAttachmentKey(url, schoolID) -> key kalau url menunjuk folder lampiran sekolah itu.
*/
type BlobService interface {
	UploadAttachment(ctx context.Context, schoolID uuid.UUID, fh *multipart.FileHeader) (publicURL, objectKey, contentType string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
	OwnedAttachmentKey(publicURL string, schoolID uuid.UUID) (string, bool)
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// prefix opsional (contoh: "sarpras")
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

// CheckAttachment: guard ukuran + jenis file sebelum upload.
func CheckAttachment(fh *multipart.FileHeader) (constants.FileKind, error) {
	if fh == nil {
		return constants.FileUnknown, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if fh.Size > constants.MaxAttachmentBytes {
		return constants.FileUnknown, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("Ukuran file maksimal %d MB", constants.MaxAttachmentBytes/(1024*1024)))
	}
	kind := constants.DetectFileTypeFromExt(fh.Filename)
	if kind == constants.FileUnknown {
		return kind, fiber.NewError(fiber.StatusUnsupportedMediaType, "Format file tidak didukung (pdf, doc, docx, xls, xlsx, jpg, png, webp)")
	}
	return kind, nil
}

func (b *OSSBlobService) UploadAttachment(ctx context.Context, schoolID uuid.UUID, fh *multipart.FileHeader) (string, string, string, error) {
	kind, err := CheckAttachment(fh)
	if err != nil {
		return "", "", "", err
	}
	if schoolID == uuid.Nil {
		return "", "", "", fiber.NewError(fiber.StatusBadRequest, "school_id tidak valid")
	}
	dir := AttachmentDir(schoolID)

	if kind == constants.FileImage {
		key, err := b.svc.UploadAsWebP(ctx, dir, fh)
		if err != nil {
			if errors.Is(err, errUnsupportedImage) {
				return "", "", "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Format gambar tidak didukung (pakai jpg/png/webp)")
			}
			return "", "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
		}
		return b.svc.PublicURL(key), key, "image/webp", nil
	}

	key, ct, err := b.svc.UploadRaw(ctx, dir, fh)
	if err != nil {
		return "", "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return b.svc.PublicURL(key), key, ct, nil
}

func (b *OSSBlobService) OwnedAttachmentKey(publicURL string, schoolID uuid.UUID) (string, bool) {
	return b.svc.OwnedAttachmentKey(publicURL, schoolID)
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "URL kosong")
	}
	key, err := b.svc.KeyFromPublicURL(publicURL)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := b.svc.DeleteObject(ctx, key); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("Gagal hapus object: %v", err))
	}
	return nil
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

var defaultFileFields = []string{"file", "attachment", "document"}

// GetUploadFile mencari file dari beberapa kemungkinan field form.
// (nil, nil) kalau tidak ada file.
func GetUploadFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gunakan multipart/form-data")
	}
	names := fieldNames
	if len(names) == 0 {
		names = defaultFileFields
	}
	for _, fn := range names {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, nil
}
