package repository

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRandomNumber() int {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return rng.Intn(900000000) + 100000000
}

// GenerateEstimateID builds a work-estimate identifier like "EST-482910375".
func GenerateEstimateID() string {
	return fmt.Sprintf("EST-%d", GenerateRandomNumber())
}

// GenerateAcknowledgementNumber issues the acknowledgement reference handed
// to the applicant after an enquiry report is recorded.
func GenerateAcknowledgementNumber() string {
	id := uuid.New().String()
	return "ACK-" + strings.Split(id, "-")[0]
}

// GenerateApplicationID formats a sequential application number for the
// given calendar year, e.g. "APP-2025-000123".
func GenerateApplicationID(year int, sequence int) string {
	return fmt.Sprintf("APP-%d-%06d", year, sequence)
}
