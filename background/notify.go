package background

import (
	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"

	"github.com/samscloud-io/trace-api/utils"
)

// OneSignalLanguageCode is a mapping between onesignal language code and i18n language code
var OneSignalLanguageCode = map[string]string{
	"zh-Hant": "zh_tw",
	"en":      "en",
}

func localizedText(headingID, contentID string) (headings, contents map[string]string) {
	headings = map[string]string{}
	contents = map[string]string{}
	for osCode, lang := range OneSignalLanguageCode {
		loc := utils.NewLocalizer(lang)
		headings[osCode] = loc.MustLocalize(&i18n.LocalizeConfig{MessageID: headingID})
		contents[osCode] = loc.MustLocalize(&i18n.LocalizeConfig{MessageID: contentID})
	}
	return
}

// NotifyExposure alerts subjects whose risk flag just flipped on. Push
// goes out to everyone; subscribed subjects with a phone number also
// get an SMS. A failed SMS is logged and does not fail the task, the
// push already carried the alert.
func (m *BackgroundManager) NotifyExposure(subjectIDs []string) error {
	if len(subjectIDs) == 0 {
		return nil
	}

	headings, contents := localizedText(
		"notification.exposure.heading", "notification.exposure.content")

	if err := m.notifier.NotifySubjectsByText(subjectIDs, headings, contents,
		map[string]interface{}{
			"notification_type": "EXPOSURE_ALERT",
		}); err != nil {
		return err
	}

	smsText := utils.NewLocalizer("en").
		MustLocalize(&i18n.LocalizeConfig{MessageID: "sms.exposure"})
	for _, id := range subjectIDs {
		subjectID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		subject, err := m.store.GetSubject(subjectID)
		if err != nil {
			log.WithField("prefix", "background").WithError(err).
				WithField("subject", id).Warn("subject lookup for sms")
			continue
		}
		if !subject.IsSubscribed || subject.PhoneNumber == nil {
			continue
		}
		if err := m.sms.Send(*subject.PhoneNumber, smsText); err != nil {
			log.WithField("prefix", "background").WithError(err).
				WithField("subject", id).Warn("send exposure sms")
		}
	}
	return nil
}

// NotifyRiskCleared informs subjects whose risk flag just flipped off.
func (m *BackgroundManager) NotifyRiskCleared(subjectIDs []string) error {
	if len(subjectIDs) == 0 {
		return nil
	}

	headings, contents := localizedText(
		"notification.cleared.heading", "notification.cleared.content")

	return m.notifier.NotifySubjectsByText(subjectIDs, headings, contents,
		map[string]interface{}{
			"notification_type": "RISK_CLEARED",
		})
}
