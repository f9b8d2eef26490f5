// Package ml labels a motorcycle reading as present or stale from its
// signal strength and the time since the tag was last seen.
package ml

import "math"

type Input struct {
	Rssi                 float64 `json:"rssi"`
	SecondsSinceLastSeen float64 `json:"secondsSinceLastSeen"`
}

type Output struct {
	PredictedLabel bool    `json:"predicted"`
	Score          float64 `json:"score"`
}

// Decision boundary of the classifier: a reading counts as present when the
// signal is stronger than rssiThreshold dBm and the tag was seen within
// maxStaleSeconds.
const (
	rssiThreshold   = -60.0
	maxStaleSeconds = 300.0
)

// Predictor is a stateless binary classifier. The score is a logistic
// squash of the weaker of the two normalized margins, so it approaches 1
// deep inside the present region, 0 deep in the stale region, and 0.5 at
// the boundary; the label flips exactly at 0.5.
type Predictor struct {
	rssiScale float64
	ageScale  float64
}

func NewPredictor() *Predictor {
	return &Predictor{rssiScale: 10, ageScale: 60}
}

func (p *Predictor) Predict(in Input) Output {
	signalMargin := (in.Rssi - rssiThreshold) / p.rssiScale
	freshnessMargin := (maxStaleSeconds - in.SecondsSinceLastSeen) / p.ageScale

	margin := math.Min(signalMargin, freshnessMargin)
	score := 1.0 / (1.0 + math.Exp(-margin))
	return Output{
		PredictedLabel: margin > 0,
		Score:          score,
	}
}
