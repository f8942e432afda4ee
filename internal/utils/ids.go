package utils

import (
	"github.com/google/uuid"
)

// GenerateRequestID creates a new UUID for tagging a request in the logs
func GenerateRequestID() string {
	return uuid.New().String()
}
