package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
)

// InfoBox has a fixed cardinality: the six boxes are seeded by migration and
// only their content is editable.
type InfoBox struct {
	ID          string `json:"id"`
	Titolo      string `json:"titolo"`
	Contenuto   string `json:"contenuto"`
	Ordinamento int    `json:"ordinamento"`
}

func InfoBoxFromRecord(rec *core.Record) InfoBox {
	return InfoBox{
		ID:          rec.Id,
		Titolo:      rec.GetString("titolo"),
		Contenuto:   rec.GetString("contenuto"),
		Ordinamento: rec.GetInt("ordinamento"),
	}
}

type InfoBoxPatch struct {
	Titolo    *string `json:"titolo"`
	Contenuto *string `json:"contenuto"`
}

func (p *InfoBoxPatch) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Titolo, validation.NilOrNotEmpty),
	)
}

func (p *InfoBoxPatch) Apply(rec *core.Record) {
	if p.Titolo != nil {
		rec.Set("titolo", *p.Titolo)
	}
	if p.Contenuto != nil {
		rec.Set("contenuto", *p.Contenuto)
	}
}
