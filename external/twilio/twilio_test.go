package twilio

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendSMS(t *testing.T) {
	var gotTo, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Accounts/AC123/Messages.json", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		assert.Nil(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM1"}`))
	}))
	defer ts.Close()

	sms := New("AC123", "secret", "+15550100000", ts.URL, ts.Client())
	err := sms.Send("+15550100001", "exposure alert")
	assert.Nil(t, err)
	assert.Equal(t, "+15550100001", gotTo)
	assert.Equal(t, "exposure alert", gotBody)
}

func TestSendSMSErrorResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_message":"invalid number"}`))
	}))
	defer ts.Close()

	sms := New("AC123", "secret", "+15550100000", ts.URL, ts.Client())
	err := sms.Send("+15550100001", "exposure alert")
	assert.Contains(t, err.Error(), "invalid number")
}

func TestSendSMSValidation(t *testing.T) {
	sms := New("", "", "+15550100000", "", nil)
	assert.Equal(t, errEmptyCredentials, sms.Send("+15550100001", "hi"))

	sms = New("AC123", "secret", "+15550100000", "", nil)
	assert.Equal(t, errEmptyRecipient, sms.Send("", "hi"))
}
