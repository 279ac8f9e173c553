package city

import (
	"encoding/json"
	"fmt"

	"github.com/ChicagoDave/citygen/pkg/analytics"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// Document is the serialised form of a Model.
type Document struct {
	Config        spec.Config            `json:"config"`
	Zones         []layout.Zone          `json:"zones"`
	Roads         []routing.Road         `json:"roads"`
	Buildings     []layout.Building      `json:"buildings"`
	Intersections []routing.Intersection `json:"intersections"`
	Stats         analytics.Stats        `json:"stats"`
}

// Document returns the model's serialisable form. Slices are copies.
func (m *Model) Document() Document {
	return Document{
		Config:        m.Config(),
		Zones:         m.Zones(),
		Roads:         m.Roads(),
		Buildings:     m.Buildings(),
		Intersections: m.Intersections(),
		Stats:         m.Stats(),
	}
}

// FromDocument rebuilds a model from its serialised collections.
// Intersections, statistics and the placement report are recomputed.
func FromDocument(doc Document) (*Model, error) {
	if err := validation.ValidateConfig(doc.Config).Err(); err != nil {
		return nil, err
	}
	zones := clone(doc.Zones)
	roads := clone(doc.Roads)
	buildings := clone(doc.Buildings)
	return &Model{
		cfg:           doc.Config.Clone(),
		zones:         zones,
		roads:         roads,
		buildings:     buildings,
		intersections: routing.Intersections(roads),
		placement:     layout.ReportEmptyZones(zones, buildings),
	}, nil
}

// MarshalJSON implements json.Marshaler.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Document())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Model) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding city: %w", err)
	}
	decoded, err := FromDocument(doc)
	if err != nil {
		return fmt.Errorf("decoding city: %w", err)
	}
	*m = *decoded
	return nil
}
