// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"time"

	"github.com/pion/rtp"
)

// Stamper writes the negotiated timing extensions onto outgoing RTP
// headers. Which extensions are written follows from the negotiated set
// it was created with: transport-wide sequence numbers, abs-send-time,
// both, or neither.
//
// Stamper is not safe for concurrent use.
type Stamper struct {
	transportCCID  uint8
	absSendTimeID  uint8
	nextSequenceNr uint16
}

// NewStamper returns a Stamper configured from a negotiated extension
// set, typically the output of Filter.
func NewStamper(negotiated []RTPHeaderExtension) *Stamper {
	return &Stamper{
		transportCCID: FindID(negotiated, TransportCCURI),
		absSendTimeID: FindID(negotiated, AbsSendTimeURI),
	}
}

// Stamp adds the negotiated timing extensions for a packet sent at
// sendTime to header. Transport-wide sequence numbers increase by one
// per stamped packet.
func (s *Stamper) Stamp(header *rtp.Header, sendTime time.Time) error {
	if s.absSendTimeID != 0 {
		payload, err := rtp.NewAbsSendTimeExtension(sendTime).Marshal()
		if err != nil {
			return err
		}
		if err = header.SetExtension(s.absSendTimeID, payload); err != nil {
			return err
		}
	}

	if s.transportCCID != 0 {
		payload, err := (&rtp.TransportCCExtension{TransportSequence: s.nextSequenceNr}).Marshal()
		if err != nil {
			return err
		}
		if err = header.SetExtension(s.transportCCID, payload); err != nil {
			return err
		}
		s.nextSequenceNr++
	}

	return nil
}
