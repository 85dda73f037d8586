package messaging

import (
	"encoding/json"

	"finance-service/src/internal/model"
	"finance-service/src/pkg/kafka"
	"finance-service/src/pkg/log"
)

type Producer[T model.Event] struct {
	Producer kafka.Producer
	Topic    string
	Log      log.Log
}

// Send publishes event keyed by its id. A producer without a kafka client
// is disabled and drops events.
func (p *Producer[T]) Send(event T) error {
	if p == nil || p.Producer == nil {
		return nil
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.Log.Error("gateway/messaging/producer", "failed to marshal event", "Send", err.Error())
		return err
	}

	err = p.Producer.Publish(p.Topic, event.GetId(), value)
	if err != nil {
		p.Log.Error("send-event", "error send message", "send", err.Error())
		return err
	}

	return nil
}
