// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"testing"
	"time"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
)

func TestStamperTransportCC(t *testing.T) {
	stamper := NewStamper([]RTPHeaderExtension{
		{URI: TransportCCURI, ID: 5},
	})

	for i := uint16(0); i < 3; i++ {
		header := &rtp.Header{}
		assert.NoError(t, stamper.Stamp(header, time.Now()))

		var ext rtp.TransportCCExtension
		assert.NoError(t, ext.Unmarshal(header.GetExtension(5)))
		assert.Equal(t, i, ext.TransportSequence)
	}
}

func TestStamperAbsSendTime(t *testing.T) {
	stamper := NewStamper([]RTPHeaderExtension{
		{URI: AbsSendTimeURI, ID: 2},
	})

	header := &rtp.Header{}
	assert.NoError(t, stamper.Stamp(header, time.Now()))

	payload := header.GetExtension(2)
	assert.Len(t, payload, 3)
	assert.Nil(t, header.GetExtension(5))
}

func TestStamperBoth(t *testing.T) {
	stamper := NewStamper([]RTPHeaderExtension{
		{URI: AbsSendTimeURI, ID: 2},
		{URI: TransportCCURI, ID: 3},
	})

	header := &rtp.Header{}
	assert.NoError(t, stamper.Stamp(header, time.Now()))
	assert.NotNil(t, header.GetExtension(2))
	assert.NotNil(t, header.GetExtension(3))
}

func TestStamperNothingNegotiated(t *testing.T) {
	stamper := NewStamper([]RTPHeaderExtension{
		{URI: SDESMidURI, ID: 4},
	})

	header := &rtp.Header{}
	assert.NoError(t, stamper.Stamp(header, time.Now()))
	assert.False(t, header.Extension)
}
