// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package types provides shared unit types.
package types

import "fmt"

const (
	// BitPerSecond is a data rate of 1 bit per second
	BitPerSecond = DataRate(1)
	// KiloBitPerSecond is a data rate of 1 kilobit per second
	KiloBitPerSecond = 1000 * BitPerSecond
	// MegaBitPerSecond is a data rate of 1 megabit per second
	MegaBitPerSecond = 1000 * KiloBitPerSecond
)

// DataRate in bit per second
type DataRate int

func (r DataRate) String() string {
	switch {
	case r >= MegaBitPerSecond:
		return fmt.Sprintf("%.2f Mb/s", float64(r)/float64(MegaBitPerSecond))
	case r >= KiloBitPerSecond:
		return fmt.Sprintf("%.2f kb/s", float64(r)/float64(KiloBitPerSecond))
	default:
		return fmt.Sprintf("%d b/s", int(r))
	}
}
