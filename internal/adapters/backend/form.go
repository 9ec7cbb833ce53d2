package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// methodOverrideField is the marker the Backend reads when a semantic PUT
// has to travel as a POST (its multipart endpoints only accept POST).
const methodOverrideField = "_method"

// Form assembles a multipart/form-data payload. Numeric values are carried
// as strings; the Backend coerces them.
type Form struct {
	fields [][2]string
	files  []formFile
}

type formFile struct {
	field    string
	filename string
	content  io.Reader
}

// Set appends a plain field.
func (f *Form) Set(field, value string) {
	f.fields = append(f.fields, [2]string{field, value})
}

// AddFile appends a file part.
func (f *Form) AddFile(field, filename string, content io.Reader) {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
}

// OverrideMethod marks the payload with the Backend's method-override field.
func (f *Form) OverrideMethod(method string) {
	f.Set(methodOverrideField, method)
}

// Encode renders the multipart body and returns it with its boundary.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", file.field, err)
		}
		if _, err = io.Copy(part, file.content); err != nil {
			return nil, "", fmt.Errorf("copy file part %s: %w", file.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}

	return buf.Bytes(), w.Boundary(), nil
}
