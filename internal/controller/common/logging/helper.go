package logginghelper

import (
	log "github.com/sirupsen/logrus"
)

func LogReceived(transport, method string, fields log.Fields) {
	log.WithFields(log.Fields{
		"transport": transport,
		"method":    method,
	}).WithFields(fields).Debug("Request received")
}

func LogDenied(transport, method, permission string, err error) {
	log.WithFields(log.Fields{
		"transport":  transport,
		"method":     method,
		"permission": permission,
		"reason":     err,
	}).Warn("Request denied")
}

func LogError(transport, method string, err error) {
	log.WithFields(log.Fields{
		"transport": transport,
		"method":    method,
		"error":     err,
	}).Error("Request failed")
}
