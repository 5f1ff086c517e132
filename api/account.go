package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samscloud-io/trace-api/score"
	"github.com/samscloud-io/trace-api/store"
)

// accountRegister is the API for registering a new subject. It is the
// only open endpoint besides auth; the returned id is what the client
// authenticates with afterwards.
func (s *Server) accountRegister(c *gin.Context) {
	logger := log.WithField("api", "accountRegister")

	var params store.SubjectParams
	if err := c.BindJSON(&params); err != nil {
		logger.WithError(err).Error(errorInvalidParameters.Message)
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	subject, err := s.store.CreateSubject(params)
	if err == store.ErrPhoneNumberTaken {
		abortWithEncoding(c, http.StatusForbidden, errorPhoneNumberTaken)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": subject,
	})
}

// accountDetail is the API to query the authenticated subject,
// exposure counters and risk flag included.
func (s *Server) accountDetail(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"result": currentSubject(c),
	})
}

// accountUpdate is the API to update profile fields.
func (s *Server) accountUpdate(c *gin.Context) {
	subject := currentSubject(c)

	var params store.SubjectParams
	if err := c.BindJSON(&params); err != nil {
		c.Error(err)
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest)
		return
	}

	updated, err := s.store.UpdateSubject(subject.ID, params)
	if err == store.ErrPhoneNumberTaken {
		abortWithEncoding(c, http.StatusForbidden, errorPhoneNumberTaken)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": updated,
	})
}

// accountScore is the API to query the subject's current risk score,
// derived from exposure counters, reported symptoms and test result.
func (s *Server) accountScore(c *gin.Context) {
	subject := currentSubject(c)

	var positive bool
	var symptomScore float64 = 100

	report, err := s.store.GetReport(subject.ID)
	switch err {
	case nil:
		positive = report.Positive()
		symptomScore = score.SymptomScore(report.Symptoms)
	case store.ErrReportNotFound:
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	total := score.TotalScore(score.ExposureScore(subject), symptomScore, positive)

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"score": total,
			"color": score.ScoreColor(total),
		},
	})
}

// accountDelete is the API to remove a subject and everything they own
// from our service.
func (s *Server) accountDelete(c *gin.Context) {
	subject := currentSubject(c)

	result, err := s.store.DeleteSubject(subject.ID)
	if shouldInterupt(err, c) {
		return
	}

	s.dispatchAlerts(result)

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
