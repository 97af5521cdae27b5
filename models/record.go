package models

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// isoDate normalizes a backend datetime to an ISO-8601 UTC string at the
// read boundary. Zero values map to the empty string.
func isoDate(d types.DateTime) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().UTC().Format(time.RFC3339)
}

// fileURL builds the download URL for a single-file field, or "" when the
// field is empty.
func fileURL(rec *core.Record, field string) string {
	name := rec.GetString(field)
	if name == "" {
		return ""
	}
	return fmt.Sprintf("/api/files/%s/%s/%s", rec.Collection().Name, rec.Id, name)
}
