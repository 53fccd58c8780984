// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package bwe implements estimation of the acknowledged send bitrate
// from transport-wide congestion control feedback.
package bwe

import (
	"fmt"
	"time"
)

// Acknowledgment holds the feedback for a single acknowledged packet.
// InALR is computed by the caller and marks packets sent while the
// sender was application limited.
type Acknowledgment struct {
	SeqNr     int64
	Size      int
	Departure time.Time
	Arrival   time.Time
	InALR     bool
}

func (a Acknowledgment) String() string {
	return fmt.Sprintf("seq=%v, departure=%v, arrival=%v", a.SeqNr, a.Departure, a.Arrival)
}
