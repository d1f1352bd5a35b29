package handler

import (
	"net/http"

	"faultproducer/src/fault"
	"faultproducer/src/publisher"

	logger "github.com/sirupsen/logrus"
)

// TriggerAcknowledgement is returned for every trigger call, whatever happened to the publish.
const TriggerAcknowledgement = "Exception was thrown and sent to Kafka!"

type faultBuilder interface {
	Build() (fault.FaultRecord, error)
}

type faultPublisher interface {
	Publish(topic, payload string) (publisher.Ack, error)
}

type triggerRecorder interface {
	FaultTriggered(name string)
}

// TriggerFaultHandler builds one fault record per request, publishes it to topic and
// always answers 200 with TriggerAcknowledgement. Failures only reach the logs.
func TriggerFaultHandler(builder faultBuilder, pub faultPublisher, topic string, recorder triggerRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := builder.Build()
		if err != nil {
			logger.WithError(err).Error("failed to build fault record")
		} else {
			if recorder != nil {
				recorder.FaultTriggered(record.Name)
			}

			ack, err := pub.Publish(topic, fault.Serialize(record))
			if err != nil {
				logger.WithError(err).
					WithField("fault", record.Name).
					Error("failed to publish fault record")
			} else {
				logger.WithFields(logger.Fields{
					"fault":      record.Name,
					"deliveryId": ack.ID,
					"topic":      ack.Topic,
				}).Info("Fault record sent")
			}
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(TriggerAcknowledgement)); err != nil {
			logger.WithError(err).Error("failed to write trigger acknowledgement")
		}
	}
}
