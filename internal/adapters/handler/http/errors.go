package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

var badRequest = []error{
	domain.ErrInvalidMetric,
	domain.ErrInvalidClockTime,
	domain.ErrInvalidSocialBattery,
	domain.ErrInvalidDate,
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrInvalidFrequency,
	domain.ErrInvalidColor,
	domain.ErrCategoryEmpty,
	domain.ErrHabitDateInvalid,
	domain.ErrTaskTitleEmpty,
	domain.ErrTaskTitleTooLong,
	domain.ErrInvalidPriority,
	domain.ErrInvalidReminder,
	domain.ErrTaskDateInvalid,
	domain.ErrTaskScheduleMissed,
	domain.ErrBookTitleEmpty,
	domain.ErrBookTitleLong,
	domain.ErrInvalidStatus,
	domain.ErrInvalidPages,
	domain.ErrInvalidGoal,
	domain.ErrProfileNameEmpty,
	domain.ErrInvalidTheme,
	domain.ErrFutureWindow,
	domain.ErrInvalidScale,
	services.ErrUnknownVariant,
}

var notFound = []error{
	domain.ErrHabitNotFound,
	domain.ErrTaskNotFound,
	domain.ErrBookNotFound,
	domain.ErrProfileNotFound,
	domain.ErrKeyNotFound,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"message": "Repeat the request with ?confirm=true to proceed.",
		})
	case isAny(err, notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isAny(err, badRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}
