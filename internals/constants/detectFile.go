package constants

import (
	"path/filepath"
	"strings"
)

type FileKind int

const (
	FileUnknown FileKind = iota
	FileDocument
	FileSpreadsheet
	FileImage
)

// Maks ukuran lampiran yang boleh diunggah.
const MaxAttachmentBytes = 10 * 1024 * 1024

func DetectFileTypeFromExt(filename string) FileKind {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf", ".doc", ".docx":
		return FileDocument
	case ".xls", ".xlsx":
		return FileSpreadsheet
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileImage
	default:
		return FileUnknown
	}
}
