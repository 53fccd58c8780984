// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package bwe

import (
	"container/heap"
	"time"

	"github.com/pion/mediaengine/internal/types"
)

// BitrateEstimator consumes single acknowledged packets and produces a
// smoothed estimate of the achieved throughput.
type BitrateEstimator interface {
	// Update adds one acknowledged packet of the given size that
	// arrived at the remote end at arrival.
	Update(arrival time.Time, size int, inALR bool)

	// Bitrate returns the current estimate. ok is false until enough
	// packets were observed to form an estimate.
	Bitrate() (rate types.DataRate, ok bool)

	// ExpectFastRateChange hints that the achieved rate is about to
	// change faster than the usual smoothing allows.
	ExpectFastRateChange()
}

const defaultBitrateWindow = 500 * time.Millisecond

type bitrateHeapItem struct {
	arrival time.Time
	size    int
}

type bitrateHeap []bitrateHeapItem

// Len implements heap.Interface.
func (h bitrateHeap) Len() int {
	return len(h)
}

// Less implements heap.Interface.
func (h bitrateHeap) Less(i int, j int) bool {
	return h[i].arrival.Before(h[j].arrival)
}

// Pop implements heap.Interface.
func (h *bitrateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// Push implements heap.Interface.
func (h *bitrateHeap) Push(x any) {
	*h = append(*h, x.(bitrateHeapItem))
}

// Swap implements heap.Interface.
func (h bitrateHeap) Swap(i int, j int) {
	h[i], h[j] = h[j], h[i]
}

// windowedBitrateEstimator averages the acknowledged bytes over a
// sliding window of arrival times. Packets flagged as sent during an
// application limited period are excluded, since the rate achieved
// there says nothing about the available bandwidth.
type windowedBitrateEstimator struct {
	window        time.Duration
	latestArrival time.Time
	history       *bitrateHeap
}

// NewWindowedBitrateEstimator returns a BitrateEstimator averaging over
// the given window of arrival times.
func NewWindowedBitrateEstimator(window time.Duration) BitrateEstimator {
	return &windowedBitrateEstimator{
		window:        window,
		latestArrival: time.Time{},
		history:       &bitrateHeap{},
	}
}

func (e *windowedBitrateEstimator) Update(arrival time.Time, size int, inALR bool) {
	if inALR {
		return
	}
	if arrival.After(e.latestArrival) {
		e.latestArrival = arrival
	}
	heap.Push(e.history, bitrateHeapItem{
		arrival: arrival,
		size:    size,
	})
}

func (e *windowedBitrateEstimator) Bitrate() (types.DataRate, bool) {
	deadline := e.latestArrival.Add(-e.window)
	for len(*e.history) > 0 && (*e.history)[0].arrival.Before(deadline) {
		heap.Pop(e.history)
	}
	if len(*e.history) < 2 {
		return 0, false
	}
	earliest := e.latestArrival
	sum := 0
	for _, item := range *e.history {
		if item.arrival.Before(earliest) {
			earliest = item.arrival
		}
		sum += item.size
	}
	d := e.latestArrival.Sub(earliest)
	if d <= 0 {
		return 0, false
	}
	return types.DataRate(8 * float64(sum) / d.Seconds()), true
}

// ExpectFastRateChange drops the averaging history, so the next
// estimate only reflects packets acknowledged from now on.
func (e *windowedBitrateEstimator) ExpectFastRateChange() {
	*e.history = (*e.history)[:0]
	e.latestArrival = time.Time{}
}
