package wire

import (
	"errors"
	"strings"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
)

const (
	// SectionMarker introduces the configuration dump in a config response.
	SectionMarker = "=== Current Configuration ==="

	// ErrorMarker flags a rejected command anywhere in a response.
	ErrorMarker = "ERROR:"

	// EchoPrefix starts the firmware's echo of the received command.
	EchoPrefix = "RX:"

	// HelpBannerPrefix starts the firmware's hint line after an unknown command.
	HelpBannerPrefix = "Type 'help'"
)

// DecodeResult summarizes a best-effort decode.
type DecodeResult struct {
	// Applied counts the fields written into the configuration.
	Applied int

	// Warnings lists the fields that were skipped.
	Warnings []model.Warning

	// SectionFound reports whether the section marker was seen.
	SectionFound bool
}

type decodeState uint8

const (
	stateSeeking decodeState = iota
	stateInSection
)

// IsError reports whether a response carries the device's error marker.
func IsError(response string) bool {
	return strings.Contains(response, ErrorMarker)
}

// Decode applies the configuration section of a config response to cfg.
// Channel values are written with Config.Set, so duplicates reported by the
// device are kept as-is. Decode never fails; rejected fields become warnings
// and leave the corresponding value unchanged.
func Decode(text string, cfg *model.Config) DecodeResult {
	var res DecodeResult
	state := stateSeeking

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		if line == "" || isDiagnostic(line) {
			continue
		}
		if strings.Contains(line, SectionMarker) {
			state = stateInSection
			res.SectionFound = true
			continue
		}
		if state != stateInSection {
			continue
		}
		if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "===") {
			continue
		}

		rawKey, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(rawKey))
		value = strings.TrimSpace(value)

		if w, ok := applyField(cfg, key, value); ok {
			res.Applied++
		} else {
			w.Line = lineNo
			res.Warnings = append(res.Warnings, w)
		}
	}
	return res
}

func isDiagnostic(line string) bool {
	return strings.HasPrefix(line, EchoPrefix) ||
		strings.HasPrefix(line, ErrorMarker) ||
		strings.HasPrefix(line, HelpBannerPrefix)
}

func applyField(cfg *model.Config, key, value string) (model.Warning, bool) {
	if key == ProtocolKey {
		p, err := model.ParseProtocol(value)
		if err != nil {
			return model.Warning{Key: key, Value: value, Reason: "unknown protocol"}, false
		}
		cfg.Protocol = p
		return model.Warning{}, true
	}

	in, ok := model.LookupInput(key)
	if !ok {
		return model.Warning{Key: key, Value: value, Reason: "unknown key"}, false
	}
	ch, err := model.ParseChannel(key, value)
	if err != nil {
		reason := err.Error()
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			reason = verr.Reason
		}
		return model.Warning{Key: key, Value: value, Reason: reason}, false
	}
	if err := cfg.Set(in, ch); err != nil {
		return model.Warning{Key: key, Value: value, Reason: err.Error()}, false
	}
	return model.Warning{}, true
}
