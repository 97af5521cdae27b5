package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("directory")

		collection.Fields.Add(
			&core.TextField{
				Name:     "nome",
				Required: true,
				Max:      100,
			},
			&core.TextField{
				Name:     "cognome",
				Required: true,
				Max:      100,
			},
			&core.TextField{
				Name: "telefono",
				Max:  30,
			},
			&core.TextField{
				Name: "professione",
				Max:  200,
			},
			&core.TextField{
				Name: "indirizzo",
				Max:  300,
			},
			&core.TextField{
				Name: "azienda",
				Max:  200,
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

		collection.AddIndex("idx_directory_cognome", false, "cognome, nome", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("directory")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
