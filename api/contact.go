package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
	"github.com/samscloud-io/trace-api/store"
)

// createContact is the API to record meetings with other people. The
// body is either a single contact or a batch under "data"; a batch is
// processed entry by entry and its exposure results are folded into
// one.
func (s *Server) createContact(c *gin.Context) {
	subject := currentSubject(c)

	body, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	var batch struct {
		Data []store.ContactParams `json:"data"`
	}
	if err := json.Unmarshal(body, &batch); err != nil || len(batch.Data) == 0 {
		var single store.ContactParams
		if err := json.Unmarshal(body, &single); err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		batch.Data = []store.ContactParams{single}
	}

	events := make([]*schema.ContactEvent, 0, len(batch.Data))
	result := exposure.NewResult()
	for _, params := range batch.Data {
		event, r, err := s.store.CreateContact(subject.ID, params)
		if shouldInterupt(err, c) {
			return
		}
		events = append(events, event)
		result.Merge(r)
	}

	s.dispatchAlerts(result)

	if len(events) == 1 {
		c.JSON(http.StatusOK, gin.H{
			"result":   events[0],
			"exposure": result,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":   events,
		"exposure": result,
	})
}

// listContacts is the API to query the subject's contact history.
func (s *Server) listContacts(c *gin.Context) {
	subject := currentSubject(c)

	events, err := s.store.ListContacts(subject.ID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": events,
	})
}

// deleteContact is the API to remove a contact entry; exposure state
// derived from it is retracted.
func (s *Server) deleteContact(c *gin.Context) {
	subject := currentSubject(c)

	contactID, err := uuid.Parse(c.Param("contactID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	result, err := s.store.DeleteContact(subject.ID, contactID)
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
