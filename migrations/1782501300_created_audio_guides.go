package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("audioGuides")

		collection.Fields.Add(
			&core.TextField{
				Name:     "nomeFile",
				Required: true,
				Max:      200,
			},
			&core.FileField{
				Name:      "audio",
				Required:  true,
				MaxSelect: 1,
				MimeTypes: []string{
					"audio/mpeg",
					"audio/mp4",
					"audio/aac",
					"audio/ogg",
					"audio/wav",
				},
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
			&core.NumberField{
				Name:    "ordinamento",
				OnlyInt: true,
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

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("audioGuides")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
