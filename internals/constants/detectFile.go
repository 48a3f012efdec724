package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindImage   = "image"
	FileKindPDF     = "pdf"
	FileKindSheet   = "spreadsheet"
	FileKindUnknown = "unknown"
)

// DetectFileKind classifies an upload by its extension.
func DetectFileKind(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	case ".pdf":
		return FileKindPDF
	case ".xlsx", ".csv":
		return FileKindSheet
	default:
		return FileKindUnknown
	}
}
