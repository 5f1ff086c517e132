package background

import (
	"errors"
	"net/http"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"

	"github.com/samscloud-io/trace-api/external/onesignal"
	"github.com/samscloud-io/trace-api/external/twilio"
	"github.com/samscloud-io/trace-api/store"
)

// BackgroundManager runs the tracing background jobs: push and SMS
// alerts to subjects whose exposure state changed.
type BackgroundManager struct {
	store store.TraceCore

	notifier NotificationCenter

	sms twilio.SMS

	taskServer *machinery.Server

	worker *machinery.Worker
}

func New(ormDB *gorm.DB, taskServer *machinery.Server) *BackgroundManager {
	httpClient := &http.Client{
		Timeout: 15 * time.Second,
	}

	notifier := NewOnesignalNotificationCenter(
		viper.GetString("onesignal.appid"),
		onesignal.NewClient(httpClient),
	)

	sms := twilio.New(
		viper.GetString("twilio.sid"),
		viper.GetString("twilio.token"),
		viper.GetString("twilio.from"),
		viper.GetString("twilio.endpoint"),
		httpClient,
	)

	return &BackgroundManager{
		store:      store.NewTraceStore(ormDB, nil),
		notifier:   notifier,
		sms:        sms,
		taskServer: taskServer,
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	if m.worker != nil {
		return errors.New("background worker has started")
	}
	m.worker = m.taskServer.NewWorker("trace-worker", 5)
	return m.worker.Launch()
}
