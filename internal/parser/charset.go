package parser

import (
	"io"
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts body to UTF-8 when contentType declares another charset.
// JSON is UTF-8 unless stated otherwise, so bodies without a charset parameter pass
// through untouched instead of going through content sniffing.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	label := strings.ToLower(strings.TrimSpace(params["charset"]))
	if label == "" || label == "utf-8" || label == "utf8" {
		return body, nil
	}
	return charset.NewReaderLabel(label, body)
}
