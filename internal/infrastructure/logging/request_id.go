package logging

import "github.com/google/uuid"

// GenerateRequestID returns a new random request id
func GenerateRequestID() string {
	return uuid.New().String()
}
