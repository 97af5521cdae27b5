package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
)

type DirectoryMember struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Cognome     string `json:"cognome"`
	Telefono    string `json:"telefono"`
	Professione string `json:"professione"`
	Indirizzo   string `json:"indirizzo"`
	Azienda     string `json:"azienda"`
	IsVisible   bool   `json:"isVisible"`
}

func DirectoryMemberFromRecord(rec *core.Record) DirectoryMember {
	return DirectoryMember{
		ID:          rec.Id,
		Nome:        rec.GetString("nome"),
		Cognome:     rec.GetString("cognome"),
		Telefono:    rec.GetString("telefono"),
		Professione: rec.GetString("professione"),
		Indirizzo:   rec.GetString("indirizzo"),
		Azienda:     rec.GetString("azienda"),
		IsVisible:   rec.GetBool("isVisible"),
	}
}

type DirectoryMemberForm struct {
	Nome        string `json:"nome"`
	Cognome     string `json:"cognome"`
	Telefono    string `json:"telefono"`
	Professione string `json:"professione"`
	Indirizzo   string `json:"indirizzo"`
	Azienda     string `json:"azienda"`
	IsVisible   *bool  `json:"isVisible"`
}

func (f *DirectoryMemberForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Nome, validation.Required),
		validation.Field(&f.Cognome, validation.Required),
	)
}

func (f *DirectoryMemberForm) Apply(rec *core.Record) {
	rec.Set("nome", f.Nome)
	rec.Set("cognome", f.Cognome)
	rec.Set("telefono", f.Telefono)
	rec.Set("professione", f.Professione)
	rec.Set("indirizzo", f.Indirizzo)
	rec.Set("azienda", f.Azienda)
	visible := true
	if f.IsVisible != nil {
		visible = *f.IsVisible
	}
	rec.Set("isVisible", visible)
}

type DirectoryMemberPatch struct {
	Nome        *string `json:"nome"`
	Cognome     *string `json:"cognome"`
	Telefono    *string `json:"telefono"`
	Professione *string `json:"professione"`
	Indirizzo   *string `json:"indirizzo"`
	Azienda     *string `json:"azienda"`
	IsVisible   *bool   `json:"isVisible"`
}

func (p *DirectoryMemberPatch) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Nome, validation.NilOrNotEmpty),
		validation.Field(&p.Cognome, validation.NilOrNotEmpty),
	)
}

func (p *DirectoryMemberPatch) Apply(rec *core.Record) {
	if p.Nome != nil {
		rec.Set("nome", *p.Nome)
	}
	if p.Cognome != nil {
		rec.Set("cognome", *p.Cognome)
	}
	if p.Telefono != nil {
		rec.Set("telefono", *p.Telefono)
	}
	if p.Professione != nil {
		rec.Set("professione", *p.Professione)
	}
	if p.Indirizzo != nil {
		rec.Set("indirizzo", *p.Indirizzo)
	}
	if p.Azienda != nil {
		rec.Set("azienda", *p.Azienda)
	}
	if p.IsVisible != nil {
		rec.Set("isVisible", *p.IsVisible)
	}
}
