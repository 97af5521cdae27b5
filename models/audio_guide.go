package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
)

type AudioGuide struct {
	ID          string `json:"id"`
	NomeFile    string `json:"nomeFile"`
	URLAudio    string `json:"urlAudio"`
	URLImmagine string `json:"urlImmagine"`
	Ordinamento int    `json:"ordinamento"`
	IsVisible   bool   `json:"isVisible"`
}

func AudioGuideFromRecord(rec *core.Record) AudioGuide {
	return AudioGuide{
		ID:          rec.Id,
		NomeFile:    rec.GetString("nomeFile"),
		URLAudio:    fileURL(rec, "audio"),
		URLImmagine: fileURL(rec, "immagine"),
		Ordinamento: rec.GetInt("ordinamento"),
		IsVisible:   rec.GetBool("isVisible"),
	}
}

type AudioGuideForm struct {
	NomeFile    string `json:"nomeFile"`
	Ordinamento int    `json:"ordinamento"`
	IsVisible   *bool  `json:"isVisible"`
	Audio       string `json:"audio"`    // data URL, required on create
	Immagine    string `json:"immagine"` // data URL, optional
}

func (f *AudioGuideForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.NomeFile, validation.Required),
		validation.Field(&f.Audio, validation.Required),
	)
}

func (f *AudioGuideForm) Apply(rec *core.Record) {
	rec.Set("nomeFile", f.NomeFile)
	rec.Set("ordinamento", f.Ordinamento)
	visible := true
	if f.IsVisible != nil {
		visible = *f.IsVisible
	}
	rec.Set("isVisible", visible)
}

type AudioGuidePatch struct {
	NomeFile    *string `json:"nomeFile"`
	Ordinamento *int    `json:"ordinamento"`
	IsVisible   *bool   `json:"isVisible"`
	Audio       *string `json:"audio"`
	Immagine    *string `json:"immagine"`
}

func (p *AudioGuidePatch) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.NomeFile, validation.NilOrNotEmpty),
	)
}

func (p *AudioGuidePatch) Apply(rec *core.Record) {
	if p.NomeFile != nil {
		rec.Set("nomeFile", *p.NomeFile)
	}
	if p.Ordinamento != nil {
		rec.Set("ordinamento", *p.Ordinamento)
	}
	if p.IsVisible != nil {
		rec.Set("isVisible", *p.IsVisible)
	}
}
