package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/logging"
)

// respondError maps domain errors to field-attributed HTTP error payloads.
// Every body has the shape {"error": {"message": ..., ...}}.
func respondError(c *gin.Context, err error) {
	var (
		outOfRange *domain.SeatOutOfRangeError
		seatTaken  *domain.SeatTakenError
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
	)

	switch {
	case errors.Is(err, domain.ErrEmptyTicketList):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"field":   "tickets",
			"message": err.Error(),
		}})
	case errors.As(err, &outOfRange):
		body := gin.H{
			"field":   outOfRange.Field,
			"message": outOfRange.Error(),
			"min":     outOfRange.Min,
			"max":     outOfRange.Max,
		}
		if outOfRange.TicketIndex >= 0 {
			body["ticket_index"] = outOfRange.TicketIndex
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": body})
	case errors.As(err, &seatTaken):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"message": seatTaken.Error(),
			"flight":  seatTaken.FlightID,
			"row":     seatTaken.Row,
			"seat":    seatTaken.Seat,
		}})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": notFound.Error()}})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"field":   validation.Field,
			"message": validation.Message,
		}})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"field": "email", "message": err.Error()}})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": err.Error()}})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": err.Error()}})
	default:
		logging.Error("internal error", "error", err.Error(), "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "internal server error"}})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": message}})
}
