/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package converter decodes the byte strings shown by PDF text-showing operators into
// Unicode, dispatching over a font's /Encoding (or inferred subtype) and layering an optional
// /Differences override and an optional embedded /ToUnicode CMap on top of it.
package converter

// Mode tags which byte-decoding strategy a CharsetConverter uses.
type Mode int

// The converter modes recognised by the core, matching the named-charset table.
const (
	ModeUtf8Passthrough Mode = iota
	ModeIdentityTwoByte
	ModeStandard
	ModeMacExpert
	ModeMacRoman
	ModeWinAnsi
	ModeNamedCharset
)

func (m Mode) String() string {
	switch m {
	case ModeUtf8Passthrough:
		return "Utf8Passthrough"
	case ModeIdentityTwoByte:
		return "IdentityTwoByte"
	case ModeStandard:
		return "Standard"
	case ModeMacExpert:
		return "MacExpert"
	case ModeMacRoman:
		return "MacRoman"
	case ModeWinAnsi:
		return "WinAnsi"
	case ModeNamedCharset:
		return "NamedCharset"
	}
	return "Unknown"
}
