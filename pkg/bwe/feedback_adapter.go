// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package bwe

import (
	"errors"
	"time"

	"github.com/pion/logging"
	"github.com/pion/rtcp"
	"github.com/pion/rtp"
)

var (
	errMissingTWCCExtension  = errors.New("missing transport layer cc header extension")
	errInvalidFeedbackPacket = errors.New("got invalid feedback packet")
)

type sentPacket struct {
	sendTime time.Time
	size     int
}

// FeedbackAdapter converts incoming transport-wide congestion control
// feedback into batches of Acknowledgments, ordered by arrival time as
// decoded from the receive deltas. The InALR flag on each
// acknowledgment is filled in from the inALR callback, which receives
// the packet's send time.
type FeedbackAdapter struct {
	log     logging.LeveledLogger
	history map[uint16]sentPacket
	inALR   func(departure time.Time) bool
}

// NewFeedbackAdapter returns a new FeedbackAdapter. inALR may be nil,
// in which case no packet is considered application limited.
func NewFeedbackAdapter(inALR func(departure time.Time) bool) *FeedbackAdapter {
	if inALR == nil {
		inALR = func(time.Time) bool { return false }
	}
	return &FeedbackAdapter{
		log:     logging.NewDefaultLoggerFactory().NewLogger("bwe_feedback_adapter"),
		history: make(map[uint16]sentPacket),
		inALR:   inALR,
	}
}

// OnSent records that a packet with the given header and total size was
// sent at ts. The header must carry a transport-wide sequence number in
// the extension registered under twccID.
func (f *FeedbackAdapter) OnSent(ts time.Time, header *rtp.Header, size int, twccID uint8) error {
	payload := header.GetExtension(twccID)
	if payload == nil {
		return errMissingTWCCExtension
	}
	var tccExt rtp.TransportCCExtension
	if err := tccExt.Unmarshal(payload); err != nil {
		return err
	}

	f.history[tccExt.TransportSequence] = sentPacket{
		sendTime: ts,
		size:     size,
	}
	return nil
}

// OnTransportCCFeedback converts an incoming rtcp.TransportLayerCC into
// Acknowledgments for all received packets still present in the sent
// history. Packets reported as lost produce no acknowledgment. Receive
// deltas are expected in microseconds, as produced by unmarshalling the
// feedback with pion/rtcp.
func (f *FeedbackAdapter) OnTransportCCFeedback(feedback *rtcp.TransportLayerCC) ([]Acknowledgment, error) {
	result := []Acknowledgment{}

	packetStatusCount := uint16(0)
	chunkIndex := 0
	deltaIndex := 0
	referenceTime := time.Time{}.Add(time.Duration(feedback.ReferenceTime) * 64 * time.Millisecond)

	for packetStatusCount < feedback.PacketStatusCount {
		if chunkIndex >= len(feedback.PacketChunks) || len(feedback.PacketChunks) == 0 {
			return nil, errInvalidFeedbackPacket
		}
		switch packetChunk := feedback.PacketChunks[chunkIndex].(type) {
		case *rtcp.RunLengthChunk:
			symbol := packetChunk.PacketStatusSymbol
			for i := uint16(0); i < packetChunk.RunLength; i++ {
				seqNr := feedback.BaseSequenceNumber + packetStatusCount
				if received(symbol) {
					if deltaIndex >= len(feedback.RecvDeltas) {
						f.log.Warnf("feedback is missing recv deltas for %v received packets", feedback.PacketStatusCount)
						packetStatusCount++
						continue
					}
					receiveTime := getReceiveTime(referenceTime, feedback.RecvDeltas[deltaIndex])
					referenceTime = receiveTime
					deltaIndex++
					if sent, ok := f.history[seqNr]; ok {
						result = append(result, f.acknowledgment(seqNr, sent, receiveTime))
					}
				}
				packetStatusCount++
			}
			chunkIndex++
		case *rtcp.StatusVectorChunk:
			for _, symbol := range packetChunk.SymbolList {
				seqNr := feedback.BaseSequenceNumber + packetStatusCount
				if received(symbol) {
					if deltaIndex >= len(feedback.RecvDeltas) {
						f.log.Warnf("feedback is missing recv deltas for %v received packets", feedback.PacketStatusCount)
						packetStatusCount++
						continue
					}
					receiveTime := getReceiveTime(referenceTime, feedback.RecvDeltas[deltaIndex])
					referenceTime = receiveTime
					deltaIndex++
					if sent, ok := f.history[seqNr]; ok {
						result = append(result, f.acknowledgment(seqNr, sent, receiveTime))
					}
				}
				packetStatusCount++
				if packetStatusCount >= feedback.PacketStatusCount {
					break
				}
			}
			chunkIndex++
		}
	}
	return result, nil
}

func (f *FeedbackAdapter) acknowledgment(seqNr uint16, sent sentPacket, receiveTime time.Time) Acknowledgment {
	return Acknowledgment{
		SeqNr:     int64(seqNr),
		Size:      sent.size,
		Departure: sent.sendTime,
		Arrival:   receiveTime,
		InALR:     f.inALR(sent.sendTime),
	}
}

func received(symbol uint16) bool {
	return symbol == rtcp.TypeTCCPacketReceivedSmallDelta ||
		symbol == rtcp.TypeTCCPacketReceivedLargeDelta
}

// RecvDelta.Delta is already scaled to microseconds by pion/rtcp.
func getReceiveTime(baseTime time.Time, delta *rtcp.RecvDelta) time.Time {
	return baseTime.Add(time.Duration(delta.Delta) * time.Microsecond)
}
