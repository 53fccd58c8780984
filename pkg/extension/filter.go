// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"sort"

	"github.com/pion/logging"
)

var log = logging.NewDefaultLoggerFactory().NewLogger("extension_filter") // nolint:gochecknoglobals

// FilterOptions selects which of the mutually exclusive bandwidth
// estimation extensions are preferred by Filter. It is read on every
// call.
type FilterOptions struct {
	// KeepAbsSendTime keeps the abs-send-time extension even when
	// transport-wide sequence numbers were also negotiated.
	KeepAbsSendTime bool
}

// Validate reports whether every extension ID in the set is within
// [MinID, MaxID] and unique. A set failing validation is malformed and
// must not be passed to Filter.
func Validate(extensions []RTPHeaderExtension) bool {
	var idUsed [1 + MaxID]bool
	for _, ext := range extensions {
		if ext.ID < MinID || ext.ID > MaxID {
			log.Errorf("bad RTP extension ID: %v", ext)
			return false
		}
		if idUsed[ext.ID] {
			log.Errorf("duplicate RTP extension ID: %v", ext)
			return false
		}
		idUsed[ext.ID] = true
	}
	return true
}

// Filter reduces a validated extension set to the subset used on the
// wire. Extensions not accepted by supported are dropped. The remainder
// is brought into a canonical order, so the result does not depend on
// the order the extensions were offered in. If filterRedundant is set,
// duplicate (URI, encrypt) entries and all but the most preferred of the
// mutually exclusive bandwidth estimation extensions are removed.
//
// Filter assumes its input already passed Validate.
func Filter(
	extensions []RTPHeaderExtension,
	supported func(uri string) bool,
	filterRedundant bool,
	opts FilterOptions,
) []RTPHeaderExtension {
	result := make([]RTPHeaderExtension, 0, len(extensions))
	for _, ext := range extensions {
		if supported(ext.URI) {
			result = append(result, ext)
		} else {
			log.Warnf("unsupported RTP extension: %v", ext)
		}
	}

	// Encrypted extensions first, then ascending by URI. Duplicates end
	// up adjacent, which keeps the deduplication below a single pass.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Encrypt != result[j].Encrypt {
			return result[i].Encrypt
		}
		return result[i].URI < result[j].URI
	})

	if !filterRedundant {
		return result
	}

	result = dedupConsecutive(result)

	if opts.KeepAbsSendTime {
		return discardRedundant(result, []string{
			AbsSendTimeURI,
			TimestampOffsetURI,
		})
	}
	return discardRedundant(result, []string{
		TransportCCURI,
		AbsSendTimeURI,
		TimestampOffsetURI,
	})
}

func dedupConsecutive(extensions []RTPHeaderExtension) []RTPHeaderExtension {
	result := extensions[:0]
	for _, ext := range extensions {
		if len(result) > 0 {
			last := result[len(result)-1]
			if last.URI == ext.URI && last.Encrypt == ext.Encrypt {
				continue
			}
		}
		result = append(result, ext)
	}
	return result
}

// discardRedundant removes mutually exclusive extensions with lower
// priority: prios is scanned from highest to lowest priority, and every
// match after the first one found is deleted from extensions.
func discardRedundant(extensions []RTPHeaderExtension, prios []string) []RTPHeaderExtension {
	found := false
	for _, uri := range prios {
		index := -1
		for i, ext := range extensions {
			if ext.URI == uri {
				index = i
				break
			}
		}
		if index == -1 {
			continue
		}
		if found {
			extensions = append(extensions[:index], extensions[index+1:]...)
		}
		found = true
	}
	return extensions
}
