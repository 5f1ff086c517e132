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

func TestCreateContactCrossing(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	infected := uuid.New()

	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{ID: subjectID}, nil).Times(1)
	core.EXPECT().CreateContact(subjectID, gomock.Any()).Return(
		&schema.ContactEvent{
			ID:         uuid.New(),
			SubjectID:  subjectID,
			IsInfected: true,
		},
		&exposure.Result{
			Infected:    true,
			Linked:      []uuid.UUID{infected},
			NewlyAtRisk: []uuid.UUID{subjectID},
		},
		nil).Times(1)

	router := testRouter(&s, subjectID)
	router.POST("/", s.createContact)

	body := `{"name":"Bob","phone_number":"+15550102000","date_contacted":"2021-03-02"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Result   schema.ContactEvent `json:"result"`
		Exposure exposure.Result     `json:"exposure"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.True(t, resp.Result.IsInfected)
	assert.True(t, resp.Exposure.Infected)
}

func TestDeleteContactNotOwner(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	core := mocks.NewMockTraceCore(ctl)
	s := Server{store: core}

	subjectID := uuid.New()
	contactID := uuid.New()

	core.EXPECT().GetSubject(subjectID).Return(&schema.Subject{ID: subjectID}, nil).Times(1)
	core.EXPECT().DeleteContact(subjectID, contactID).
		Return(nil, store.ErrNotEventOwner).Times(1)

	router := testRouter(&s, subjectID)
	router.DELETE("/:contactID", s.deleteContact)

	req := httptest.NewRequest("DELETE", "/"+contactID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "wrong status code")
}
