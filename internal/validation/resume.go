package validation

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/justsurfingit/job-board/internal/models"
)

var resumeMIMETypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// ResumeTypeAllowed accepts pdf, doc, docx and txt files. The declared MIME
// type is tried first, then the type sniffed from the content, then the
// file extension.
func ResumeTypeAllowed(f models.ResumeFile) bool {
	if mimeAllowed(f.ContentType) {
		return true
	}
	if len(f.Data) > 0 && mimeAllowed(mimetype.Detect(f.Data).String()) {
		return true
	}
	return resumeExtensions[strings.ToLower(filepath.Ext(f.FileName))]
}

// DetectContentType sniffs data, used when the client sent no usable type.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

func mimeAllowed(ct string) bool {
	base, _, _ := strings.Cut(ct, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	for _, m := range resumeMIMETypes {
		if base == m {
			return true
		}
	}
	return false
}
