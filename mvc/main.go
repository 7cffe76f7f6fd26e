package mvc

import (
	"errors"
	"net/http"

	"snpit/contexts"
	"snpit/models"
	"snpit/models/dtos"
	errorsDto "snpit/models/dtos/errors"
	"snpit/services"
	"snpit/services/classification"

	"github.com/labstack/echo"
)

func RetrieveCommonElements(c echo.Context) (*services.ClassificationService, classification.Options, bool) {
	gc := c.(*contexts.SnpitContext)

	opts := classification.Options{
		Threshold:    gc.Threshold,
		IgnoreFilter: gc.IgnoreFilter,
	}

	return gc.ClassificationService, opts, gc.IncludeRankings
}

// StatusForClassificationError maps a classification failure to the HTTP
// status and error body returned to the client.
func StatusForClassificationError(err error) (int, dtos.GeneralErrorResponseDto) {
	switch {
	case errors.Is(err, models.ErrUnsupportedInputFormat):
		return http.StatusBadRequest, errorsDto.CreateSimpleBadRequest(err.Error())
	case errors.Is(err, models.ErrMalformedGenotype),
		errors.Is(err, models.ErrInvalidAlleleIndex),
		errors.Is(err, models.ErrMalformedVariant),
		errors.Is(err, models.ErrMalformedSequence):
		return http.StatusUnprocessableEntity, errorsDto.CreateSimpleUnprocessableEntity(err.Error())
	default:
		return http.StatusInternalServerError, errorsDto.CreateSimpleInternalServerError(err.Error())
	}
}
