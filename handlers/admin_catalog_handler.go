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

// AdminCatalogHandler is the admin CRUD surface for audio guides, the member
// directory and the informational boxes. Info boxes have fixed cardinality:
// they can only be edited.
type AdminCatalogHandler struct {
	audioGuides *repository.Collection[models.AudioGuide]
	directory   *repository.Collection[models.DirectoryMember]
	infoBoxes   *repository.Collection[models.InfoBox]
	uploads     *services.UploadService
	logger      *slog.Logger
}

func NewAdminCatalogHandler(
	audioGuides *repository.Collection[models.AudioGuide],
	directory *repository.Collection[models.DirectoryMember],
	infoBoxes *repository.Collection[models.InfoBox],
	uploads *services.UploadService,
	logger *slog.Logger,
) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		audioGuides: audioGuides,
		directory:   directory,
		infoBoxes:   infoBoxes,
		uploads:     uploads,
		logger:      logger,
	}
}

// Audio guides

func (h *AdminCatalogHandler) ListAudioGuides(e *core.RequestEvent) error {
	guides, err := h.audioGuides.All()
	if err != nil {
		return e.BadRequestError("Impossibile caricare le audioguide.", err)
	}
	return e.JSON(http.StatusOK, guides)
}

func (h *AdminCatalogHandler) CreateAudioGuide(e *core.RequestEvent) error {
	var form models.AudioGuideForm
	if err := e.BindBody(&form); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := form.Validate(); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	audio, err := h.stageAudio(form.Audio)
	if err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	var image *filesystem.File
	if form.Immagine != "" {
		image, err = h.stageImage(form.Immagine)
		if err != nil {
			return e.BadRequestError(err.Error(), nil)
		}
	}

	guide, err := h.audioGuides.Create(e.Request.Context(), func(rec *core.Record) {
		form.Apply(rec)
		rec.Set("audio", audio)
		if image != nil {
			rec.Set("immagine", image)
		}
	})
	if err != nil {
		h.logger.Error("audio guide create failed", "error", err)
		return e.BadRequestError("Errore durante il salvataggio dell'audioguida.", err)
	}
	return e.JSON(http.StatusOK, guide)
}

func (h *AdminCatalogHandler) UpdateAudioGuide(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var patch models.AudioGuidePatch
	if err := e.BindBody(&patch); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := patch.Validate(); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	var audio, image *filesystem.File
	var err error
	if patch.Audio != nil && *patch.Audio != "" {
		if audio, err = h.stageAudio(*patch.Audio); err != nil {
			return e.BadRequestError(err.Error(), nil)
		}
	}
	if patch.Immagine != nil && *patch.Immagine != "" {
		if image, err = h.stageImage(*patch.Immagine); err != nil {
			return e.BadRequestError(err.Error(), nil)
		}
	}

	guide, err := h.audioGuides.Update(e.Request.Context(), id, func(rec *core.Record) {
		patch.Apply(rec)
		if audio != nil {
			rec.Set("audio", audio)
		}
		if patch.Immagine != nil && *patch.Immagine == "" {
			rec.Set("immagine", nil)
		}
		if image != nil {
			rec.Set("immagine", image)
		}
	})
	if err != nil {
		h.logger.Error("audio guide update failed", "guideId", id, "error", err)
		return e.BadRequestError("Errore durante il salvataggio dell'audioguida.", err)
	}
	return e.JSON(http.StatusOK, guide)
}

func (h *AdminCatalogHandler) DeleteAudioGuide(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.audioGuides.Delete(e.Request.Context(), id); err != nil {
		h.logger.Error("audio guide delete failed", "guideId", id, "error", err)
		return e.BadRequestError("Errore durante l'eliminazione dell'audioguida.", err)
	}
	return e.NoContent(http.StatusNoContent)
}

// Directory

func (h *AdminCatalogHandler) ListDirectory(e *core.RequestEvent) error {
	members, err := h.directory.All()
	if err != nil {
		return e.BadRequestError("Impossibile caricare l'annuario.", err)
	}
	return e.JSON(http.StatusOK, members)
}

func (h *AdminCatalogHandler) CreateDirectoryMember(e *core.RequestEvent) error {
	var form models.DirectoryMemberForm
	if err := e.BindBody(&form); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := form.Validate(); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	member, err := h.directory.Create(e.Request.Context(), func(rec *core.Record) {
		form.Apply(rec)
	})
	if err != nil {
		h.logger.Error("directory member create failed", "error", err)
		return e.BadRequestError("Errore durante il salvataggio del membro.", err)
	}
	return e.JSON(http.StatusOK, member)
}

func (h *AdminCatalogHandler) UpdateDirectoryMember(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var patch models.DirectoryMemberPatch
	if err := e.BindBody(&patch); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := patch.Validate(); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	member, err := h.directory.Update(e.Request.Context(), id, func(rec *core.Record) {
		patch.Apply(rec)
	})
	if err != nil {
		h.logger.Error("directory member update failed", "memberId", id, "error", err)
		return e.BadRequestError("Errore durante il salvataggio del membro.", err)
	}
	return e.JSON(http.StatusOK, member)
}

func (h *AdminCatalogHandler) DeleteDirectoryMember(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	if err := h.directory.Delete(e.Request.Context(), id); err != nil {
		h.logger.Error("directory member delete failed", "memberId", id, "error", err)
		return e.BadRequestError("Errore durante l'eliminazione del membro.", err)
	}
	return e.NoContent(http.StatusNoContent)
}

// Info boxes

func (h *AdminCatalogHandler) ListInfoBoxes(e *core.RequestEvent) error {
	boxes, err := h.infoBoxes.All()
	if err != nil {
		return e.BadRequestError("Impossibile caricare le informazioni.", err)
	}
	return e.JSON(http.StatusOK, boxes)
}

func (h *AdminCatalogHandler) UpdateInfoBox(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var patch models.InfoBoxPatch
	if err := e.BindBody(&patch); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := patch.Validate(); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	box, err := h.infoBoxes.Update(e.Request.Context(), id, func(rec *core.Record) {
		patch.Apply(rec)
	})
	if err != nil {
		h.logger.Error("info box update failed", "boxId", id, "error", err)
		return e.BadRequestError("Errore durante il salvataggio del contenuto.", err)
	}
	return e.JSON(http.StatusOK, box)
}

func (h *AdminCatalogHandler) stageAudio(dataURL string) (*filesystem.File, error) {
	file, err := h.uploads.StageAudio(dataURL)
	if err != nil {
		monitoring.TrackMediaUpload("audio", "rejected")
		return nil, err
	}
	monitoring.TrackMediaUpload("audio", "staged")
	return file, nil
}

func (h *AdminCatalogHandler) stageImage(dataURL string) (*filesystem.File, error) {
	file, err := h.uploads.StageImage(dataURL)
	if err != nil {
		monitoring.TrackMediaUpload("image", "rejected")
		return nil, err
	}
	monitoring.TrackMediaUpload("image", "staged")
	return file, nil
}
