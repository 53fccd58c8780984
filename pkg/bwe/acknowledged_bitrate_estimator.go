// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package bwe

import (
	"time"

	"github.com/pion/logging"
	"github.com/pion/mediaengine/internal/types"
)

// AcknowledgedBitrateEstimator tracks the throughput acknowledged by
// the receiver. It owns a single BitrateEstimator, forwards every
// acknowledgment to it, and fires a one-shot fast-rate-change hint the
// first time feedback arrives for a packet received after the sender
// left an application limited period.
//
// All methods must be called from the thread processing network
// feedback; the estimator does no locking of its own.
type AcknowledgedBitrateEstimator struct {
	log          logging.LeveledLogger
	estimator    BitrateEstimator
	alrEndedTime time.Time
}

// NewAcknowledgedBitrateEstimator returns an estimator delegating to
// the given BitrateEstimator. Passing nil installs a windowed estimator
// with the default window.
func NewAcknowledgedBitrateEstimator(estimator BitrateEstimator) *AcknowledgedBitrateEstimator {
	if estimator == nil {
		estimator = NewWindowedBitrateEstimator(defaultBitrateWindow)
	}
	return &AcknowledgedBitrateEstimator{
		log:          logging.NewDefaultLoggerFactory().NewLogger("acknowledged_bitrate_estimator"),
		estimator:    estimator,
		alrEndedTime: time.Time{},
	}
}

// SetALREndedTime records that the sender left an application limited
// period at t, arming the fast-rate-change trigger. Calling it again
// before the trigger fired moves the armed time without firing. The
// zero time.Time is reserved as the unarmed state: passing it disarms
// a pending trigger.
func (e *AcknowledgedBitrateEstimator) SetALREndedTime(t time.Time) {
	e.alrEndedTime = t
}

// IncomingPacketFeedback forwards a batch of acknowledgments, ordered
// by arrival time, to the owned estimator. The first acknowledgment
// that arrived at or after an armed ALR-ended time triggers exactly one
// ExpectFastRateChange call, strictly before the Update for that same
// acknowledgment.
func (e *AcknowledgedBitrateEstimator) IncomingPacketFeedback(acks []Acknowledgment) {
	for _, ack := range acks {
		if !e.alrEndedTime.IsZero() && !ack.Arrival.Before(e.alrEndedTime) {
			e.log.Tracef("application limited period ended at %v", e.alrEndedTime)
			e.estimator.ExpectFastRateChange()
			e.alrEndedTime = time.Time{}
		}
		e.estimator.Update(ack.Arrival, ack.Size, ack.InALR)
	}
}

// Bitrate returns the owned estimator's current estimate, unmodified.
// ok is false while the estimator does not have enough data yet.
func (e *AcknowledgedBitrateEstimator) Bitrate() (rate types.DataRate, ok bool) {
	return e.estimator.Bitrate()
}
