package scoring

import (
	"github.com/couchcryptid/bite-score-engine/internal/domain"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
)

// Confidence labels.
const (
	ConfidenceLow    = "LOW"
	ConfidenceMedium = "MEDIUM"
	ConfidenceHigh   = "HIGH"
)

// Confidence classifies a historical sample size. Thresholds are inclusive
// lower bounds: with the defaults, 10 observations is MEDIUM and 50 is HIGH.
func Confidence(samples int, t profile.ConfidenceTunables) domain.Confidence {
	switch {
	case samples >= t.HighAt:
		return domain.Confidence{Label: ConfidenceHigh, Samples: samples, Multiplier: t.HighMultiplier}
	case samples >= t.MediumAt:
		return domain.Confidence{Label: ConfidenceMedium, Samples: samples, Multiplier: t.MediumMultiplier}
	default:
		return domain.Confidence{Label: ConfidenceLow, Samples: samples, Multiplier: t.LowMultiplier}
	}
}

// bucketConfidence looks up the sample count for one condition bucket.
func bucketConfidence(w domain.EventWindow, species, zone, bucket string, t profile.ConfidenceTunables) domain.Confidence {
	c := Confidence(w.Count(domain.ObservationKey{Species: species, Zone: zone, Bucket: bucket}), t)
	c.Bucket = bucket
	return c
}
