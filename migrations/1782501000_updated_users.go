package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection.Fields.Add(
			&core.TextField{
				Name: "nome",
				Max:  100,
			},
			&core.TextField{
				Name: "cognome",
				Max:  100,
			},
			&core.TextField{
				Name: "telefono",
				Max:  30,
			},
			&core.SelectField{
				Name:      "role",
				Values:    []string{"user", "admin"},
				MaxSelect: 1,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection.Fields.RemoveByName("nome")
		collection.Fields.RemoveByName("cognome")
		collection.Fields.RemoveByName("telefono")
		collection.Fields.RemoveByName("role")

		return app.Save(collection)
	})
}
