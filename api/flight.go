package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samscloud-io/trace-api/store"
)

// createFlight is the API to record a journey.
func (s *Server) createFlight(c *gin.Context) {
	subject := currentSubject(c)

	var params store.FlightParams
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	event, result, err := s.store.CreateFlight(subject.ID, params)
	if shouldInterupt(err, c) {
		return
	}

	s.dispatchAlerts(result)

	c.JSON(http.StatusOK, gin.H{
		"result":   event,
		"exposure": result,
	})
}

// listFlights is the API to query the subject's journeys.
func (s *Server) listFlights(c *gin.Context) {
	subject := currentSubject(c)

	events, err := s.store.ListFlights(subject.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": events,
	})
}

// deleteFlight is the API to remove a journey; exposure state derived
// from it is retracted.
func (s *Server) deleteFlight(c *gin.Context) {
	subject := currentSubject(c)

	flightID, err := uuid.Parse(c.Param("flightID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	result, err := s.store.DeleteFlight(subject.ID, flightID)
	switch err {
	case nil:
	case store.ErrEventNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorEventNotFound)
		return
	case store.ErrNotEventOwner:
		abortWithEncoding(c, http.StatusForbidden, errorNotEventOwner)
		return
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	s.dispatchAlerts(result)

	c.JSON(http.StatusOK, gin.H{
		"result":   "OK",
		"exposure": result,
	})
}
