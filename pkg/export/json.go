package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ChicagoDave/citygen/pkg/city"
)

// WriteJSON writes the model document.
func WriteJSON(w io.Writer, m *city.Model, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(m)
}

// ReadJSON decodes a model previously written by WriteJSON.
func ReadJSON(r io.Reader) (*city.Model, error) {
	var m city.Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("reading city json: %w", err)
	}
	return &m, nil
}
