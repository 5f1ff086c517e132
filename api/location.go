package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samscloud-io/trace-api/store"
)

// createLocation is the API to record a check-in. Consecutive pings at
// the same place merge into one visit.
func (s *Server) createLocation(c *gin.Context) {
	subject := currentSubject(c)

	var params store.LocationParams
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	event, result, err := s.store.CreateLocation(subject.ID, params)
	if shouldInterupt(err, c) {
		return
	}

	s.dispatchAlerts(result)

	response := gin.H{
		"result":   event,
		"exposure": result,
	}
	if event.Location != "" {
		// aggregate figures ride along; a stats error does not fail
		// the check-in
		if stats, err := s.store.GetLocationStats(event.Location); err == nil {
			response["stats"] = stats
		} else {
			log.WithError(err).Warn("location stats")
		}
	}
	c.JSON(http.StatusOK, response)
}

// listLocations is the API to query the subject's visit history.
func (s *Server) listLocations(c *gin.Context) {
	subject := currentSubject(c)

	events, err := s.store.ListLocations(subject.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": events,
	})
}

// locationStats is the API to query aggregate figures for a named
// place.
func (s *Server) locationStats(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	stats, err := s.store.GetLocationStats(location)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": stats,
	})
}

// hideLocation is the API to hide a visit from the subject's own
// history; exposure state is untouched.
func (s *Server) hideLocation(c *gin.Context) {
	subject := currentSubject(c)

	locationID, err := uuid.Parse(c.Param("locationID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	switch err := s.store.HideLocation(subject.ID, locationID); err {
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

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

// deleteLocation is the API to remove a visit; exposure state derived
// from it is retracted.
func (s *Server) deleteLocation(c *gin.Context) {
	subject := currentSubject(c)

	locationID, err := uuid.Parse(c.Param("locationID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	result, err := s.store.DeleteLocation(subject.ID, locationID)
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
