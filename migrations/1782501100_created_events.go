package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{
				Name:     "nome",
				Required: true,
				Max:      200,
			},
			&core.TextField{
				Name: "descrizione",
				Max:  5000,
			},
			&core.FileField{
				Name:      "immagine",
				MaxSelect: 1,
				MaxSize:   5242880,
				MimeTypes: []string{
					"image/jpeg",
					"image/png",
					"image/gif",
					"image/webp",
					"image/svg+xml",
				},
			},
			&core.DateField{
				Name:     "dataInizio",
				Required: true,
			},
			&core.DateField{
				Name:     "dataFine",
				Required: true,
			},
			&core.BoolField{
				Name: "isVisible",
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

		collection.AddIndex("idx_events_dataInizio", false, "dataInizio", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
