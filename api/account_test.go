package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/samscloud-io/trace-api/api/mocks"
	"github.com/samscloud-io/trace-api/schema"
	"github.com/samscloud-io/trace-api/store"
)

func testRouter(s *Server, subjectID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("requester", subjectID.String())
	})
	r.Use(s.recognizeSubjectMiddleware())
	return r
}

func TestAccountDetail(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{
		ID:              subjectID,
		Name:            "Alice",
		RiskLevel:       true,
		ContactExposure: 2,
	}, nil).Times(1)

	router := testRouter(&s, subjectID)
	router.GET("/", s.accountDetail)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Result schema.Subject `json:"result"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, subjectID, resp.Result.ID)
	assert.True(t, resp.Result.RiskLevel)
	assert.Equal(t, 2, resp.Result.ContactExposure)
}

func TestAccountScoreWithoutReport(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{ID: subjectID}, nil).Times(1)
	core.EXPECT().GetReport(subjectID).Return(nil, store.ErrReportNotFound).Times(1)

	router := testRouter(&s, subjectID)
	router.GET("/", s.accountScore)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Result struct {
			Score float64 `json:"score"`
			Color string  `json:"color"`
		} `json:"result"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, float64(100), resp.Result.Score)
	assert.Equal(t, "green", resp.Result.Color)
}

func TestAccountScorePositiveReport(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{ID: subjectID}, nil).Times(1)
	core.EXPECT().GetReport(subjectID).Return(&schema.Report{
		SubjectID:  subjectID,
		TestResult: schema.TestPositive,
	}, nil).Times(1)

	router := testRouter(&s, subjectID)
	router.GET("/", s.accountScore)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Result struct {
			Score float64 `json:"score"`
			Color string  `json:"color"`
		} `json:"result"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, float64(0), resp.Result.Score)
	assert.Equal(t, "red", resp.Result.Color)
}

func TestRecognizeSubjectUnknown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	core.EXPECT().GetSubject(subjectID).Return(nil, store.ErrSubjectNotFound).Times(1)

	router := testRouter(&s, subjectID)
	router.GET("/", s.accountDetail)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong status code")
}
