package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"membership-system/models"
	"membership-system/repository"
)

// CatalogHandler serves the remaining member-facing read models: audio
// guides, the member directory and the informational boxes.
type CatalogHandler struct {
	audioGuides *repository.Collection[models.AudioGuide]
	directory   *repository.Collection[models.DirectoryMember]
	infoBoxes   *repository.Collection[models.InfoBox]
}

func NewCatalogHandler(
	audioGuides *repository.Collection[models.AudioGuide],
	directory *repository.Collection[models.DirectoryMember],
	infoBoxes *repository.Collection[models.InfoBox],
) *CatalogHandler {
	return &CatalogHandler{
		audioGuides: audioGuides,
		directory:   directory,
		infoBoxes:   infoBoxes,
	}
}

func (h *CatalogHandler) AudioGuides(e *core.RequestEvent) error {
	guides, err := h.audioGuides.Visible(e.Request.Context())
	if err != nil {
		return e.BadRequestError("Impossibile caricare le audioguide.", err)
	}
	return e.JSON(http.StatusOK, guides)
}

func (h *CatalogHandler) Directory(e *core.RequestEvent) error {
	members, err := h.directory.Visible(e.Request.Context())
	if err != nil {
		return e.BadRequestError("Impossibile caricare l'annuario.", err)
	}
	return e.JSON(http.StatusOK, members)
}

func (h *CatalogHandler) InfoBoxes(e *core.RequestEvent) error {
	boxes, err := h.infoBoxes.All()
	if err != nil {
		return e.BadRequestError("Impossibile caricare le informazioni.", err)
	}
	return e.JSON(http.StatusOK, boxes)
}
