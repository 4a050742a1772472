package domain

import (
	"encoding/base64"
	"path/filepath"
	"strings"
)

// DefaultMIMEType is used for image extensions outside the known table.
const DefaultMIMEType = "application/octet-stream"

// imageMIMETypes maps lower-case file extensions to MIME types.
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
}

// Image is the picture sent to a vision model.
type Image struct {
	// Path is where the image was read from.
	Path string

	// MIMEType is inferred from the file extension.
	MIMEType string

	// Data is the raw image bytes.
	Data []byte
}

// NewImage builds an Image, inferring the MIME type from path.
func NewImage(path string, data []byte) Image {
	return Image{
		Path:     path,
		MIMEType: GuessMIME(filepath.Ext(path)),
		Data:     data,
	}
}

// GuessMIME returns the MIME type for an extension such as ".PNG".
func GuessMIME(ext string) string {
	if mime, ok := imageMIMETypes[strings.ToLower(ext)]; ok {
		return mime
	}
	return DefaultMIMEType
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURI embeds the image inline as data:<mime>;base64,<payload>.
func (i Image) DataURI() string {
	mime := i.MIMEType
	if mime == "" {
		mime = DefaultMIMEType
	}
	return "data:" + mime + ";base64," + i.Base64()
}
