/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package converter

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// namedCharset identifies one of the charsets reachable through the encoding-name table,
// together with the golang.org/x/text encoding (if any) that decodes it.
type namedCharset struct {
	label     string
	enc       encoding.Encoding // nil: no x/text decoder for this label; the bytes are decoded as UTF-16BE.
	vertical  bool
	identity2 bool // not set by resolveEncodingName: the Uni* names resolve to a UTF-16, UTF-32 or UTF-8 decoding instead.
}

// resolveEncodingName maps a PDF /Encoding name (as found on a Type0 font's CMap-valued
// /Encoding entry, or a simple font's /Encoding name) to a (Mode, namedCharset) pair. It
// implements the table from the Encoding-name table.
func resolveEncodingName(name string) (Mode, namedCharset) {
	switch name {
	case "WinAnsiEncoding":
		return ModeWinAnsi, namedCharset{}
	case "MacRomanEncoding":
		return ModeMacRoman, namedCharset{}
	case "MacExpertEncoding":
		return ModeMacExpert, namedCharset{}
	case "StandardEncoding":
		return ModeStandard, namedCharset{}
	case "Identity-H":
		return ModeIdentityTwoByte, namedCharset{}
	case "Identity-V":
		return ModeIdentityTwoByte, namedCharset{vertical: true}
	}

	vertical := strings.HasSuffix(name, "-V") || strings.HasSuffix(name, "V")

	switch {
	case matchesAny(name, "UniGB-UCS2-", "UniJIS-UCS2-", "UniKS-UCS2-", "UniCNS-UCS2-",
		"UniGB-UTF16-", "UniJIS-UTF16-", "UniKS-UTF16-", "UniCNS-UTF16-"):
		return ModeNamedCharset, namedCharset{label: "UTF-16BE", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), vertical: vertical}
	case matchesAny(name, "UniGB-UTF32-", "UniJIS-UTF32-", "UniKS-UTF32-", "UniCNS-UTF32-"):
		return ModeNamedCharset, namedCharset{label: "UTF-32BE", enc: utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), vertical: vertical}
	case matchesAny(name, "UniGB-UTF8-", "UniJIS-UTF8-", "UniKS-UTF8-", "UniCNS-UTF8-"):
		return ModeUtf8Passthrough, namedCharset{vertical: vertical}

	case matchesAny(name, "GBK-EUC-", "GBKp-EUC-"):
		return ModeNamedCharset, namedCharset{label: "GBK", enc: simplifiedchinese.GBK, vertical: vertical}
	case matchesAny(name, "GBK2K-"):
		return ModeNamedCharset, namedCharset{label: "GB18030", enc: simplifiedchinese.GB18030, vertical: vertical}
	case matchesAny(name, "GB-EUC-", "GBpc-EUC-", "GBT-EUC-"):
		return ModeNamedCharset, namedCharset{label: "EUC-CN", enc: simplifiedchinese.GBK, vertical: vertical}
	case matchesAny(name, "78-EUC-", "Hojo-EUC-"):
		return ModeNamedCharset, namedCharset{label: "EUC-JP", enc: japanese.EUCJP, vertical: vertical}

	case matchesAny(name, "B5", "ETen-B5-", "ETenms-B5-", "HKscs-B5-", "HKgccs-B5-", "HKm314-B5-", "HKm471-B5-",
		"HKdla-B5-", "HKdlb-B5-"):
		return ModeNamedCharset, namedCharset{label: "Big5", enc: traditionalchinese.Big5, vertical: vertical}

	case matchesAny(name, "RKSJ-", "83pv-RKSJ-", "90pv-RKSJ-", "90ms-RKSJ-", "90msp-RKSJ-", "78-RKSJ-", "78ms-RKSJ-",
		"Add-RKSJ-", "Ext-RKSJ-"):
		return ModeNamedCharset, namedCharset{label: "Shift-JIS", enc: japanese.ShiftJIS, vertical: vertical}

	case matchesAny(name, "KSC-EUC-", "KSCpv-EUC-"):
		return ModeNamedCharset, namedCharset{label: "EUC-KR", enc: korean.EUCKR, vertical: vertical}
	case matchesAny(name, "KSCms-EUC-", "KSC-Johab-"):
		return ModeNamedCharset, namedCharset{label: "UHC", enc: korean.EUCKR, vertical: vertical}

	case matchesAny(name, "GB-", "GBT-") && !strings.Contains(name, "EUC"):
		return ModeNamedCharset, namedCharset{label: "ISO-2022-CN", enc: nil, vertical: vertical}
	case name == "H" || name == "V":
		return ModeNamedCharset, namedCharset{label: "ISO-2022-JP", enc: japanese.ISO2022JP, vertical: name == "V"}
	case matchesAny(name, "Add-", "Ext-", "NWP-", "CNS1-", "CNS2-"):
		return ModeNamedCharset, namedCharset{label: "ISO-2022-JP", enc: japanese.ISO2022JP, vertical: vertical}
	case matchesAny(name, "KSC-"):
		return ModeNamedCharset, namedCharset{label: "ISO-2022-KR", enc: nil, vertical: vertical}
	case matchesAny(name, "Hojo-"):
		return ModeNamedCharset, namedCharset{label: "ISO-2022-JP-1", enc: nil, vertical: vertical}
	}

	// Unrecognised name: fall back to the built-in byte encodings.
	return ModeStandard, namedCharset{}
}

func matchesAny(name string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
