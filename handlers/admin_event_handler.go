package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"membership-system/models"
	"membership-system/monitoring"
	"membership-system/repository"
	"membership-system/services"
)

// AdminEventHandler is the admin CRUD surface for events, including image
// staging and visibility toggling (a patch with only isVisible).
type AdminEventHandler struct {
	events  *repository.Collection[models.Event]
	uploads *services.UploadService
	logger  *slog.Logger
}

func NewAdminEventHandler(events *repository.Collection[models.Event], uploads *services.UploadService, logger *slog.Logger) *AdminEventHandler {
	return &AdminEventHandler{
		events:  events,
		uploads: uploads,
		logger:  logger,
	}
}

func (h *AdminEventHandler) List(e *core.RequestEvent) error {
	events, err := h.events.All()
	if err != nil {
		return e.BadRequestError("Impossibile caricare gli eventi.", err)
	}
	return e.JSON(http.StatusOK, events)
}

func (h *AdminEventHandler) Create(e *core.RequestEvent) error {
	var form models.EventForm
	if err := e.BindBody(&form); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := form.Validate(); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	var image *filesystem.File
	if form.Immagine != "" {
		staged, err := h.stageImage(form.Immagine)
		if err != nil {
			return e.BadRequestError(err.Error(), nil)
		}
		image = staged
	}

	event, err := h.events.Create(e.Request.Context(), func(rec *core.Record) {
		form.Apply(rec)
		if image != nil {
			rec.Set("immagine", image)
		}
	})
	if err != nil {
		h.logger.Error("event create failed", "error", err)
		return e.BadRequestError("Errore durante il salvataggio dell'evento.", err)
	}
	return e.JSON(http.StatusOK, event)
}

func (h *AdminEventHandler) Update(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	current, err := h.events.ByID(id)
	if err != nil {
		return e.NotFoundError("Evento non trovato.", err)
	}

	var patch models.EventPatch
	if err := e.BindBody(&patch); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := patch.Validate(current); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	var image *filesystem.File
	clearImage := false
	if patch.Immagine != nil {
		if *patch.Immagine == "" {
			clearImage = true
		} else {
			staged, err := h.stageImage(*patch.Immagine)
			if err != nil {
				return e.BadRequestError(err.Error(), nil)
			}
			image = staged
		}
	}

	event, err := h.events.Update(e.Request.Context(), id, func(rec *core.Record) {
		patch.Apply(rec)
		if clearImage {
			// Clearing the field also deletes the stored file.
			rec.Set("immagine", nil)
		}
		if image != nil {
			rec.Set("immagine", image)
		}
	})
	if err != nil {
		h.logger.Error("event update failed", "eventId", id, "error", err)
		return e.BadRequestError("Errore durante il salvataggio dell'evento.", err)
	}
	return e.JSON(http.StatusOK, event)
}

func (h *AdminEventHandler) Delete(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.events.Delete(e.Request.Context(), id); err != nil {
		h.logger.Error("event delete failed", "eventId", id, "error", err)
		return e.BadRequestError("Errore durante l'eliminazione dell'evento.", err)
	}
	return e.NoContent(http.StatusNoContent)
}

func (h *AdminEventHandler) stageImage(dataURL string) (*filesystem.File, error) {
	file, err := h.uploads.StageImage(dataURL)
	if err != nil {
		monitoring.TrackMediaUpload("image", "rejected")
		return nil, err
	}
	monitoring.TrackMediaUpload("image", "staged")
	return file, nil
}
