package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samscloud-io/trace-api/store"
)

// getMyReport is the API to query the subject's current report.
func (s *Server) getMyReport(c *gin.Context) {
	subject := currentSubject(c)

	report, err := s.store.GetReport(subject.ID)
	if err == store.ErrReportNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorReportNotFound)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": report,
	})
}

// submitReport is the API to create or update the subject's report.
// The whole lifecycle transition runs in the store; this handler only
// hands the resulting risk flips to the notification workers.
func (s *Server) submitReport(c *gin.Context) {
	subject := currentSubject(c)

	var params store.ReportParams
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	report, result, err := s.store.SubmitReport(subject.ID, params)
	if err == store.ErrUnknownTestResult {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownTestResult)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	s.dispatchAlerts(result)

	status := http.StatusOK
	if result.Failed() {
		// some counterparts missed; the report itself is committed
		status = http.StatusMultiStatus
	}

	c.JSON(status, gin.H{
		"result":   report,
		"exposure": result,
	})
}
