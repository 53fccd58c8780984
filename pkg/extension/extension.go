// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package extension implements negotiation of RTP header extensions. It
// validates the extension set offered for a session and reduces it to the
// subset that will be written to and parsed from the wire, discarding
// unsupported entries and redundant bandwidth estimation extensions.
package extension

import "fmt"

const (
	// MinID is the smallest valid RTP header extension ID (RFC 5285).
	MinID = 1
	// MaxID is the largest extension ID expressible with one-byte headers.
	MaxID = 14
)

// URIs of well known RTP header extensions.
const (
	// TransportCCURI is the URI of the transport-wide congestion control
	// sequence number extension.
	TransportCCURI = "http://www.ietf.org/id/draft-holmer-rmcat-transport-wide-cc-extensions-01"

	// AbsSendTimeURI is the URI of the absolute send time extension
	// (3 bytes, 6.18 fixed point seconds, wraps every ~64s).
	AbsSendTimeURI = "http://www.webrtc.org/experiments/rtp-hdrext/abs-send-time"

	// TimestampOffsetURI is the URI of the transmission time offset
	// extension.
	TimestampOffsetURI = "urn:ietf:params:rtp-hdrext:toffset"

	// SDESMidURI is the URI of the SDES media identification extension.
	SDESMidURI = "urn:ietf:params:rtp-hdrext:sdes:mid"

	// AudioLevelURI is the URI of the audio level extension.
	AudioLevelURI = "urn:ietf:params:rtp-hdrext:ssrc-audio-level"

	// VideoOrientationURI is the URI of the coordination of video
	// orientation extension.
	VideoOrientationURI = "urn:3gpp:video-orientation"
)

// RTPHeaderExtension describes a single negotiated RTP header extension.
type RTPHeaderExtension struct {
	URI     string
	ID      int
	Encrypt bool
}

func (e RTPHeaderExtension) String() string {
	return fmt.Sprintf("{uri: %s, id: %d, encrypt: %v}", e.URI, e.ID, e.Encrypt)
}

// FindID returns the ID negotiated for uri, or 0 if uri is not part of
// the negotiated set. Extension ID 0 is invalid per RFC 5285, so callers
// can treat a return value of 0 as "extension not available".
func FindID(extensions []RTPHeaderExtension, uri string) uint8 {
	for _, ext := range extensions {
		if ext.URI == uri {
			return uint8(ext.ID) // nolint:gosec
		}
	}
	return 0
}
