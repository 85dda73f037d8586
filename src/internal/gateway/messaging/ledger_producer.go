package messaging

import (
	"finance-service/src/internal/model"
	"finance-service/src/pkg/kafka"
	"finance-service/src/pkg/log"
)

const (
	TopicLedgerRecorded      = "finance-ledger-recorded"
	TopicReconciliationAlert = "finance-reconciliation-alert"
)

type Topics struct {
	LedgerRecorded      string
	ReconciliationAlert string
}

type LedgerProducer struct {
	LedgerRecordedProducer      Producer[*model.LedgerRecordedEvent]
	ReconciliationAlertProducer Producer[*model.ReconciliationAlertEvent]
}

func NewLedgerProducer(producer kafka.Producer, log log.Log, topics Topics) *LedgerProducer {
	if topics.LedgerRecorded == "" {
		topics.LedgerRecorded = TopicLedgerRecorded
	}
	if topics.ReconciliationAlert == "" {
		topics.ReconciliationAlert = TopicReconciliationAlert
	}
	return &LedgerProducer{
		LedgerRecordedProducer: Producer[*model.LedgerRecordedEvent]{
			Producer: producer,
			Topic:    topics.LedgerRecorded,
			Log:      log,
		},
		ReconciliationAlertProducer: Producer[*model.ReconciliationAlertEvent]{
			Producer: producer,
			Topic:    topics.ReconciliationAlert,
			Log:      log,
		},
	}
}

func (u *LedgerProducer) SendLedgerRecorded(event *model.LedgerRecordedEvent) error {
	if u == nil {
		return nil
	}
	return u.LedgerRecordedProducer.Send(event)
}

func (u *LedgerProducer) SendReconciliationAlert(event *model.ReconciliationAlertEvent) error {
	if u == nil {
		return nil
	}
	return u.ReconciliationAlertProducer.Send(event)
}
