package logger

import (
	"tradebot/pkg/utils"

	log "github.com/sirupsen/logrus"
)

const Redacted = "***REDACTED***"

// keys are stored normalized, see utils.NormalizeKey
var sensitiveKeys = map[string]struct{}{
	"apikey":    {},
	"apisecret": {},
	"secret":    {},
	"signature": {},
	"password":  {},
	"token":     {},
}

func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[utils.NormalizeKey(key)]
	return ok
}

// Sanitize returns a copy of params with every sensitive value replaced by
// Redacted. params itself is left untouched.
func Sanitize[V any](params map[string]V) log.Fields {
	if params == nil {
		return nil
	}
	cleaned := make(log.Fields, len(params))
	for key, value := range params {
		if IsSensitiveKey(key) {
			cleaned[key] = Redacted
			continue
		}
		cleaned[key] = value
	}
	return cleaned
}
