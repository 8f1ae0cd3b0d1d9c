// internal/app/system/points/points.go

// Package points holds the scoring rules applied when volunteer hours are
// approved. Points are granted exactly once per hour entry, at approval
// time; rejected entries grant nothing.
package points

import (
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/google/uuid"
)

// PerHour is how many points one approved volunteer hour is worth.
const PerHour = 20

// Milestones are the cumulative-hour thresholds that earn a certificate.
var Milestones = []int64{10, 25, 50, 100, 250, 500}

// ForHours converts an approved hour amount into points. Fractional hours
// earn proportional points, truncated.
func ForHours(hours float64) int64 {
	return int64(hours * PerHour)
}

// NewCertificates returns certificates for every milestone crossed when a
// user's total hours move from before to after. Crossing several
// milestones in one approval earns all of them.
func NewCertificates(before, after float64, now time.Time) []models.Certificate {
	var earned []models.Certificate
	for _, m := range Milestones {
		if before < float64(m) && after >= float64(m) {
			earned = append(earned, models.Certificate{
				Milestone:     m,
				CertificateID: uuid.NewString(),
				EarnedAt:      now,
			})
		}
	}
	return earned
}
