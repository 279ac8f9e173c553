package export

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ChicagoDave/citygen/pkg/city"
)

// WriteMsgpack writes the model document as MessagePack, keyed by the
// same field names as the JSON form.
func WriteMsgpack(w io.Writer, m *city.Model) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	return enc.Encode(m.Document())
}

// ReadMsgpack decodes a model written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (*city.Model, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	var doc city.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("reading city msgpack: %w", err)
	}
	return city.FromDocument(doc)
}
