// Package imageio turns user-supplied image files into self-contained
// data-URI references the invoice model can embed. The model only ever
// stores the resulting reference, never a file handle.
package imageio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// MaxLogoBytes caps the size of an embeddable logo.
const MaxLogoBytes = 5 << 20 // 5 MB

var (
	// ErrNotImage is returned when the file content does not sniff as an image.
	ErrNotImage = errors.New("file is not an image")
	// ErrTooLarge is returned when the file exceeds MaxLogoBytes.
	ErrTooLarge = errors.New("image exceeds size limit")
)

// EncodeDataURI reads an image and encodes it as a data:<mime>;base64,<...>
// reference. The content type is sniffed from the bytes, not trusted from
// the caller.
func EncodeDataURI(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxLogoBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxLogoBytes {
		return "", ErrTooLarge
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI splits a data-URI reference back into its content type and
// raw bytes, for renderers that need to embed the image.
func DecodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	mime = strings.TrimSuffix(meta, ";base64")

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return mime, data, nil
}

// Load reads the file at path asynchronously and reports the resulting
// data-URI reference through a one-shot callback. Callers keep the model's
// prior logo value until done fires with a nil error; the loader itself
// never writes into the model.
func Load(path string, done func(uri string, err error)) {
	go func() {
		f, err := os.Open(path)
		if err != nil {
			done("", fmt.Errorf("failed to open image: %w", err))
			return
		}
		defer f.Close()

		uri, err := EncodeDataURI(f)
		done(uri, err)
	}()
}
