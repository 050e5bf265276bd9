package query

import (
	"github.com/verte-zerg/trainlog/internal/model"
)

// Update applies fields to the first record selected by key and returns the
// new collection together with the updated record.
func Update(records model.Collection, key model.Key, fields model.Fields) (model.Collection, model.Record, error) {
	if key.IsZero() {
		return nil, model.Record{}, model.ErrNoSelection
	}
	for i, r := range records {
		if !key.Matches(r) {
			continue
		}
		out := records.Clone()
		out[i] = fields.Apply(r)
		return out, out[i], nil
	}
	return nil, model.Record{}, model.ErrRecordNotFound
}

// Delete removes every record selected by key and reports how many were removed.
func Delete(records model.Collection, key model.Key) (model.Collection, int, error) {
	if key.IsZero() {
		return nil, 0, model.ErrNoSelection
	}
	out := make(model.Collection, 0, len(records))
	for _, r := range records {
		if key.Matches(r) {
			continue
		}
		out = append(out, r)
	}
	removed := len(records) - len(out)
	if removed == 0 {
		return nil, 0, model.ErrRecordNotFound
	}
	return out, removed, nil
}
