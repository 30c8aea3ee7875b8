package models

// FileKind buckets an attachment's stored MIME type for rendering. The
// classification is exact string membership against a fixed table, never
// extension sniffing, so an unlisted type simply renders as a generic file.
type FileKind struct {
	IsImage    bool `json:"is_image"`
	IsVideo    bool `json:"is_video"`
	IsAudio    bool `json:"is_audio"`
	IsDocument bool `json:"is_document"`
}

var imageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

var videoMIMEs = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/ogg":       true,
	"video/quicktime": true,
}

var audioMIMEs = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/ogg":  true,
	"audio/mp4":  true,
	"audio/webm": true,
}

var documentMIMEs = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain":                   true,
	"application/zip":              true,
	"application/x-rar-compressed": true,
	"application/vnd.rar":          true,
	"application/x-7z-compressed":  true,
}

// ClassifyMIME maps a MIME type to its file-kind flags. At most one flag is
// set; all four are false for unknown types.
func ClassifyMIME(mime string) FileKind {
	switch {
	case imageMIMEs[mime]:
		return FileKind{IsImage: true}
	case videoMIMEs[mime]:
		return FileKind{IsVideo: true}
	case audioMIMEs[mime]:
		return FileKind{IsAudio: true}
	case documentMIMEs[mime]:
		return FileKind{IsDocument: true}
	default:
		return FileKind{}
	}
}

// Kind returns the file-kind flags for the message's stored MIME type.
func (m *Message) Kind() FileKind {
	if !m.HasFile() {
		return FileKind{}
	}
	return ClassifyMIME(m.FileType)
}
