package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getSymptoms is the API to query the symptom catalog.
func (s *Server) getSymptoms(c *gin.Context) {
	symptoms, err := s.store.ListSymptoms()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symptoms": symptoms,
	})
}

// getDiseases is the API to query the disease catalog.
func (s *Server) getDiseases(c *gin.Context) {
	diseases, err := s.store.ListDiseases()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"diseases": diseases,
	})
}

// getCarriers is the API to query the airline catalog.
func (s *Server) getCarriers(c *gin.Context) {
	carriers, err := s.store.ListCarriers()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"carriers": carriers,
	})
}
