// Package resolve combines a user record with a template's field mappings to
// produce the CardData the renderer consumes. It is the only stage that sees
// UserData, FieldMapping, and the naming grammar together.
package resolve

import (
	"fmt"

	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/naming"
)

// CardData builds the per-card value set. Mappings are looked up by the
// field's source id, falling back to the field id for hand-authored fields
// that never had one. Results are keyed by field id, since that is what the
// renderer indexes by. Fields with no mapping are omitted entirely so the
// renderer's leave-untouched fallback applies.
func CardData(user model.UserData, fields []model.FieldDefinition, mappings []model.FieldMapping, opts ...naming.Option) (model.CardData, error) {
	byLayer := make(map[string]model.FieldMapping, len(mappings))
	for _, m := range mappings {
		if m.SVGLayerID == "" {
			continue
		}
		byLayer[m.SVGLayerID] = m
	}

	data := make(model.CardData, len(fields))
	for _, field := range fields {
		key := field.SourceID
		if key == "" {
			key = field.ID
		}
		m, ok := byLayer[key]
		if !ok {
			continue
		}
		value, err := naming.ResolveMapping(m, user, opts...)
		if err != nil {
			return nil, fmt.Errorf("resolve: field %q: %w", field.ID, err)
		}
		data[field.ID] = value
	}
	return data, nil
}
