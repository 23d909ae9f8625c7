package model

import "strings"

// Protocol is the RC signal protocol the dongle listens for.
type Protocol uint8

const (
	// ProtocolUnset means no protocol has been chosen yet.
	ProtocolUnset Protocol = iota
	ProtocolIBUS
	ProtocolSBUS
	ProtocolCRSF
	ProtocolDSMX
	ProtocolDSM2
	ProtocolFPORT
	ProtocolPPM
	// ProtocolDebug simulates a save without talking to the device.
	ProtocolDebug
)

var protocolNames = [...]string{
	ProtocolUnset: "unset",
	ProtocolIBUS:  "ibus",
	ProtocolSBUS:  "sbus",
	ProtocolCRSF:  "crsf",
	ProtocolDSMX:  "dsmx",
	ProtocolDSM2:  "dsm2",
	ProtocolFPORT: "fport",
	ProtocolPPM:   "ppm",
	ProtocolDebug: "debug",
}

// Protocols returns the selectable protocols in display order, debug last.
func Protocols() []Protocol {
	return []Protocol{
		ProtocolIBUS, ProtocolSBUS, ProtocolCRSF, ProtocolDSMX,
		ProtocolDSM2, ProtocolFPORT, ProtocolPPM, ProtocolDebug,
	}
}

// String returns the lowercase protocol token used on the wire and in files.
func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// IsSet reports whether a protocol has been chosen.
func (p Protocol) IsSet() bool {
	return p != ProtocolUnset && int(p) < len(protocolNames)
}

// Transmits reports whether a save with this protocol reaches the device.
func (p Protocol) Transmits() bool {
	return p.IsSet() && p != ProtocolDebug
}

// LookupProtocol matches a stored protocol name exactly.
// The unset state has no name and never matches.
func LookupProtocol(name string) (Protocol, bool) {
	for _, p := range Protocols() {
		if protocolNames[p] == name {
			return p, true
		}
	}
	return ProtocolUnset, false
}

// ParseProtocol matches a protocol name case-insensitively, as the firmware
// reports names in uppercase.
func ParseProtocol(name string) (Protocol, error) {
	if p, ok := LookupProtocol(strings.ToLower(strings.TrimSpace(name))); ok {
		return p, nil
	}
	return ProtocolUnset, &ValidationError{Field: "protocol", Value: name, Reason: "unknown protocol"}
}
