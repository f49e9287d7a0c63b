// Package model holds the catalogue records, their JSON serialization and
// the request payloads accepted by the API.
//
// Records map one to one onto tables. Serialize never includes
// relationships; composed views (a planet with its residents, a character
// with its planet) are built from the base serializations.
package model

import "github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/validation"

// ByIDPayload is the payload of endpoints addressing one record by id.
type ByIDPayload struct {
	ID uint `param:"id" json:"-"`
}

func (p *ByIDPayload) Validate() error {
	return validation.Struct(p)
}

// ListPayload is the payload of endpoints without input.
type ListPayload struct{}

func (p *ListPayload) Validate() error {
	return nil
}
