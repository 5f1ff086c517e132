package twilio

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
)

const defaultURL = "https://api.twilio.com/2010-04-01"

var (
	errEmptyCredentials = fmt.Errorf("empty twilio credentials")
	errEmptyRecipient   = fmt.Errorf("empty recipient number")
)

// SMS sends text messages.
type SMS interface {
	Send(to, body string) error
}

type twilio struct {
	accountSID string
	authToken  string
	from       string
	url        string
	client     *http.Client
}

type jsonResponse struct {
	Sid          string `json:"sid"`
	ErrorMessage string `json:"error_message"`
}

func (t twilio) Send(to, body string) error {
	if t.accountSID == "" || t.authToken == "" {
		return errEmptyCredentials
	}
	if to == "" {
		return errEmptyRecipient
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.url, t.accountSID)
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var r jsonResponse
	if err := json.Unmarshal(d, &r); err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("fail to send sms: %s", r.ErrorMessage)
	}
	return nil
}

func New(accountSID, authToken, from, endpoint string, client *http.Client) SMS {
	u := defaultURL
	if endpoint != "" {
		u = endpoint
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &twilio{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		url:        u,
		client:     client,
	}
}
