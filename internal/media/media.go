// Package media turns uploaded files into the base64 form the generative
// endpoint and the library store expect.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxBytes caps a single encoded file.
const DefaultMaxBytes int64 = 10 << 20

// ErrEncoding means the file could not be read or converted.
var ErrEncoding = errors.New("could not process file")

// Media is a file encoded for transport.
type Media struct {
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// Encode reads r fully and base64-encodes it. An empty mimeType is sniffed
// from the content. Files larger than maxBytes are rejected; maxBytes <= 0
// means DefaultMaxBytes.
func Encode(r io.Reader, mimeType string, maxBytes int64) (Media, error) {
	if r == nil {
		return Media{}, fmt.Errorf("%w: no file", ErrEncoding)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Media{}, fmt.Errorf("%w: read: %v", ErrEncoding, err)
	}
	if len(raw) == 0 {
		return Media{}, fmt.Errorf("%w: empty file", ErrEncoding)
	}
	if int64(len(raw)) > maxBytes {
		return Media{}, fmt.Errorf("%w: file exceeds %d bytes", ErrEncoding, maxBytes)
	}
	return FromBytes(raw, mimeType), nil
}

// FromBytes encodes raw without size checks.
func FromBytes(raw []byte, mimeType string) Media {
	return Media{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MIMEType: normalizeMIME(mimeType, raw),
	}
}

// Bytes decodes the payload back to raw bytes.
func (m Media) Bytes() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(m.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrEncoding, err)
	}
	return raw, nil
}

// DataURL renders m as data:<mime>;base64,<data>.
func (m Media) DataURL() string {
	return "data:" + m.MIMEType + ";base64," + m.Data
}

// IsZero reports whether m carries no payload.
func (m Media) IsZero() bool {
	return m.Data == ""
}

// ParseDataURL is the inverse of DataURL. The decoded payload must be
// non-empty and no larger than maxBytes; maxBytes <= 0 means DefaultMaxBytes.
func ParseDataURL(s string, maxBytes int64) (Media, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return Media{}, fmt.Errorf("%w: not a data URL", ErrEncoding)
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return Media{}, fmt.Errorf("%w: data URL is not base64", ErrEncoding)
	}
	if int64(base64.StdEncoding.DecodedLen(len(data))) > maxBytes+2 {
		return Media{}, fmt.Errorf("%w: file exceeds %d bytes", ErrEncoding, maxBytes)
	}
	m := Media{Data: data, MIMEType: strings.TrimSuffix(meta, ";base64")}
	raw, err := m.Bytes()
	if err != nil {
		return Media{}, err
	}
	if len(raw) == 0 {
		return Media{}, fmt.Errorf("%w: empty file", ErrEncoding)
	}
	if int64(len(raw)) > maxBytes {
		return Media{}, fmt.Errorf("%w: file exceeds %d bytes", ErrEncoding, maxBytes)
	}
	if m.MIMEType == "" {
		m.MIMEType = normalizeMIME("", raw)
	}
	return m, nil
}

func normalizeMIME(declared string, raw []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			return mt
		}
	}
	sniff := raw
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	detected := http.DetectContentType(bytes.Clone(sniff))
	if mt, _, err := mime.ParseMediaType(detected); err == nil {
		return mt
	}
	return detected
}
