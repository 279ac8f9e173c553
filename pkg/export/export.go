// Package export writes generated cities to files and streams.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChicagoDave/citygen/pkg/city"
)

// Format names an export format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatOBJ     Format = "obj"
	FormatPNG     Format = "png"
	FormatGeoJSON Format = "geojson"
	FormatMsgpack Format = "msgpack"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatOBJ, FormatPNG, FormatGeoJSON, FormatMsgpack}

var (
	// ErrNoCity is returned when there is no generated city to export.
	ErrNoCity = errors.New("no city has been generated")
	// ErrUnknownFormat is returned for unsupported formats or extensions.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Error describes a failed export.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options tune exporters that have knobs.
type Options struct {
	PreviewSize int // longest side of the PNG preview in pixels
	Indent      bool
}

// DefaultPreviewSize is used when Options.PreviewSize is unset.
const DefaultPreviewSize = 800

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".obj":
		return FormatOBJ, nil
	case ".png":
		return FormatPNG, nil
	case ".geojson":
		return FormatGeoJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, filepath.Ext(path))
}

// ContentType returns the MIME type served for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatGeoJSON:
		return "application/geo+json"
	case FormatPNG:
		return "image/png"
	case FormatMsgpack:
		return "application/msgpack"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension, with the dot, for a format.
func (f Format) Extension() string {
	return "." + string(f)
}

// Write encodes m to w in the given format.
func Write(w io.Writer, m *city.Model, f Format, opts Options) error {
	if m == nil {
		return &Error{Op: string(f), Err: ErrNoCity}
	}
	var err error
	switch f {
	case FormatJSON:
		err = WriteJSON(w, m, opts.Indent)
	case FormatOBJ:
		err = WriteOBJ(w, m)
	case FormatPNG:
		err = WritePNG(w, RenderPreview(m, opts.PreviewSize))
	case FormatGeoJSON:
		err = WriteGeoJSON(w, m)
	case FormatMsgpack:
		err = WriteMsgpack(w, m)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		var ee *Error
		if errors.As(err, &ee) {
			return err
		}
		return &Error{Op: string(f), Err: err}
	}
	return nil
}

// ToFile writes m to path in the format chosen by the path's extension.
// A partially written file is removed on failure.
func ToFile(path string, m *city.Model, opts Options) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return &Error{Op: "export", Path: path, Err: err}
	}
	if m == nil {
		return &Error{Op: string(f), Path: path, Err: ErrNoCity}
	}

	out, err := os.Create(path)
	if err != nil {
		return &Error{Op: string(f), Path: path, Err: err}
	}

	bw := bufio.NewWriter(out)
	werr := Write(bw, m, f, opts)
	if werr == nil {
		werr = bw.Flush()
	}
	if cerr := out.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(path)
		var ee *Error
		if errors.As(werr, &ee) {
			ee.Path = path
			return ee
		}
		return &Error{Op: string(f), Path: path, Err: werr}
	}
	return nil
}
