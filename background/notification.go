package background

import (
	"context"

	"github.com/samscloud-io/trace-api/external/onesignal"
)

type NotificationCenter interface {
	NotifySubjectByText(subjectID string, headings, contents map[string]string, data map[string]interface{}) error
	NotifySubjectsByText(subjectIDs []string, headings, contents map[string]string, data map[string]interface{}) error
}

type OnesignalNotificationCenter struct {
	appID  string
	client *onesignal.OneSignalClient
}

func NewOnesignalNotificationCenter(appID string, client *onesignal.OneSignalClient) *OnesignalNotificationCenter {
	return &OnesignalNotificationCenter{
		appID:  appID,
		client: client,
	}
}

func (o *OnesignalNotificationCenter) NotifySubjectByText(subjectID string, headings, contents map[string]string, data map[string]interface{}) error {
	filters := []map[string]string{
		{
			"field":    "tag",
			"key":      "subject_id",
			"relation": "=",
			"value":    subjectID,
		},
	}

	req := &onesignal.NotificationRequest{
		AppID:          o.appID,
		Headings:       headings,
		Contents:       contents,
		Filters:        filters,
		Data:           data,
		LocalChannelID: "important_alert",
	}
	return o.client.SendNotification(context.Background(), req)
}

// NotifySubjectsByText consolidates subject ids into batches of OR'ed
// tag filters; onesignal caps filters per request.
func (o *OnesignalNotificationCenter) NotifySubjectsByText(subjectIDs []string, headings, contents map[string]string, data map[string]interface{}) error {
	filters := []map[string]string{}
	for i, id := range subjectIDs {
		if i%100 == 0 {
			filters = append(filters, map[string]string{
				"field":    "tag",
				"key":      "subject_id",
				"relation": "=",
				"value":    id,
			})
		} else {
			filters = append(filters,
				map[string]string{"operator": "OR"},
				map[string]string{
					"field":    "tag",
					"key":      "subject_id",
					"relation": "=",
					"value":    id,
				})
		}
		if i%100 == 99 {
			req := &onesignal.NotificationRequest{
				AppID:          o.appID,
				Headings:       headings,
				Contents:       contents,
				Filters:        filters,
				Data:           data,
				LocalChannelID: "important_alert",
			}
			if err := o.client.SendNotification(context.Background(), req); err != nil {
				return err
			}
			filters = []map[string]string{}
		}
	}
	// send rest of notification
	req := &onesignal.NotificationRequest{
		AppID:          o.appID,
		Headings:       headings,
		Contents:       contents,
		Filters:        filters,
		Data:           data,
		LocalChannelID: "important_alert",
	}
	return o.client.SendNotification(context.Background(), req)
}
