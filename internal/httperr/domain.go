package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharpcut/booking-api/internal/domain/schedule"
)

// Domain maps a scheduling domain error onto the HTTP response. Anything
// that is not a domain error becomes a 500 with a generic code.
func Domain(c *gin.Context, err error) {
	var de *schedule.Error
	if !errors.As(err, &de) {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case schedule.KindValidation:
		status = http.StatusBadRequest
	case schedule.KindConflict:
		status = http.StatusConflict
	case schedule.KindNotFound:
		status = http.StatusNotFound
	case schedule.KindPolicy:
		status = http.StatusUnprocessableEntity
	}

	Write(c, status, de.Code, de.Reason)
}
