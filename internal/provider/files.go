package provider

import (
	"encoding/base64"
	"fmt"
)

// ContentTypePDF is the only document type vendors accept inline
const ContentTypePDF = "application/pdf"

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsImage reports whether the content type is an image every vendor accepts
func (f File) IsImage() bool {
	return imageContentTypes[f.ContentType]
}

// IsPDF reports whether the file is a PDF document
func (f File) IsPDF() bool {
	return f.ContentType == ContentTypePDF
}

// Base64 returns the standard base64 encoding of the buffer
func (f File) Base64() string {
	return base64.StdEncoding.EncodeToString(f.Buffer)
}

// DataURL returns the file as a data: URL
func (f File) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", f.ContentType, f.Base64())
}

// UnsupportedNote is the text sent to the model in place of a file it cannot read
func (f File) UnsupportedNote() string {
	return fmt.Sprintf("File %q has unsupported type %s and was not attached.", f.FileName, f.ContentType)
}
