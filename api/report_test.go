package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/samscloud-io/trace-api/api/mocks"
	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/schema"
	"github.com/samscloud-io/trace-api/store"
)

func TestSubmitReportPositive(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	exposed := uuid.New()
	onset := schema.NewDate(2021, 3, 1)

	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{ID: subjectID}, nil).Times(1)
	core.EXPECT().SubmitReport(subjectID, gomock.Any()).Return(
		&schema.Report{
			SubjectID:   subjectID,
			TestResult:  schema.TestPositive,
			DataStarted: &onset,
		},
		&exposure.Result{
			Linked:      []uuid.UUID{exposed},
			NewlyAtRisk: []uuid.UUID{exposed},
		},
		nil).Times(1)

	router := testRouter(&s, subjectID)
	router.POST("/", s.submitReport)

	body := `{"test_result":"Positive","data_started":"2021-03-01"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Result   schema.Report   `json:"result"`
		Exposure exposure.Result `json:"exposure"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, schema.TestPositive, resp.Result.TestResult)
	assert.Equal(t, []uuid.UUID{exposed}, resp.Exposure.NewlyAtRisk)
}

func TestSubmitReportUnknownResult(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{ID: subjectID}, nil).Times(1)
	core.EXPECT().SubmitReport(subjectID, gomock.Any()).
		Return(nil, nil, store.ErrUnknownTestResult).Times(1)

	router := testRouter(&s, subjectID)
	router.POST("/", s.submitReport)

	body := `{"test_result":"Maybe"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}

func TestSubmitReportPartialFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	onset := schema.NewDate(2021, 3, 1)
	result := exposure.NewResult()
	result.Fail(uuid.New(), assertableErr("lookup timeout"))

	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{ID: subjectID}, nil).Times(1)
	core.EXPECT().SubmitReport(subjectID, gomock.Any()).Return(
		&schema.Report{SubjectID: subjectID, TestResult: schema.TestPositive, DataStarted: &onset},
		result, nil).Times(1)

	router := testRouter(&s, subjectID)
	router.POST("/", s.submitReport)

	body := `{"test_result":"Positive","data_started":"2021-03-01"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMultiStatus, w.Code, "wrong status code")
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
