package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// The six informational boxes are fixed: admins edit their content but never
// add or remove boxes, so the set is seeded here.
var infoBoxTitles = []string{
	"Chi Siamo",
	"Storia della Loggia",
	"Calendario delle Tornate",
	"Contatti",
	"Statuto e Regolamenti",
	"Solidarietà",
}

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("infoBoxes")

		collection.Fields.Add(
			&core.TextField{
				Name:     "titolo",
				Required: true,
				Max:      200,
			},
			&core.TextField{
				Name: "contenuto",
				Max:  10000,
			},
			&core.NumberField{
				Name:    "ordinamento",
				OnlyInt: true,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		if err := app.Save(collection); err != nil {
			return err
		}

		for i, titolo := range infoBoxTitles {
			record := core.NewRecord(collection)
			record.Set("titolo", titolo)
			record.Set("contenuto", "")
			record.Set("ordinamento", i+1)
			if err := app.Save(record); err != nil {
				return err
			}
		}

		return nil
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("infoBoxes")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
