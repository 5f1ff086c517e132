package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const defaultEndpoint = "https://onesignal.com"

// NotificationRequest is the payload of a notification submission.
// Either TemplateID or Headings/Contents must be set.
type NotificationRequest struct {
	AppID          string                 `json:"app_id"`
	TemplateID     string                 `json:"template_id,omitempty"`
	Headings       map[string]string      `json:"headings,omitempty"`
	Contents       map[string]string      `json:"contents,omitempty"`
	Filters        []map[string]string    `json:"filters,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	LocalChannelID string                 `json:"existing_android_channel_id,omitempty"`
}

// OneSignalClient is a client for sending push notifications through
// onesignal
type OneSignalClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewClient(client *http.Client) *OneSignalClient {
	endpoint := viper.GetString("onesignal.endpoint")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &OneSignalClient{
		endpoint: endpoint,
		apiKey:   viper.GetString("onesignal.key"),
		client:   client,
	}
}

// SendNotification submits a notification request and checks the
// response for partial errors reported by onesignal.
func (c *OneSignalClient) SendNotification(ctx context.Context, notification *NotificationRequest) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.endpoint+"/api/v1/notifications", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"prefix": "onesignal",
			"status": resp.StatusCode,
			"body":   string(data),
		}).Error("send notification")
		return fmt.Errorf("fail to send notification, status: %d", resp.StatusCode)
	}

	var result struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(data, &result); err == nil && len(result.Errors) > 0 {
		return fmt.Errorf("notification rejected: %s", result.Errors[0])
	}
	return nil
}
