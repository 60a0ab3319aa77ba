/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package converter

import (
	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/cmap"
	"github.com/wovenfox/pdftext/internal/textencoding"
)

// ToUnicodeConverter wraps a document-embedded /ToUnicode CMap.
type ToUnicodeConverter struct {
	cm *cmap.CMap
}

// NewToUnicodeConverter wraps `cm`, which may be nil (no ToUnicode CMap present).
func NewToUnicodeConverter(cm *cmap.CMap) *ToUnicodeConverter {
	if cm == nil {
		return nil
	}
	return &ToUnicodeConverter{cm: cm}
}

// IsVertical reports the CMap's WMode.
func (t *ToUnicodeConverter) IsVertical() bool {
	return t != nil && t.cm.IsVertical()
}

// TryDecode attempts to decode a Unicode substring from the start of data[at:], preferring the
// longest matching codespace length. It returns the decoded text, the per-code width (from
// `f`, keyed by the matched byte sequence's big-endian integer value) and the number of bytes
// consumed. ok is false if no codespace length matched at this position.
func (t *ToUnicodeConverter) TryDecode(data []byte, at int, f *font.Font) (text string, width float64, n int, ok bool) {
	if t == nil || at >= len(data) {
		return "", 0, 0, false
	}
	s, consumed, matched := t.cm.LookupLongest(data[at:])
	if !matched {
		return "", 0, 0, false
	}
	code := textencoding.CharCode(0)
	for i := 0; i < consumed; i++ {
		code = code<<8 | textencoding.CharCode(data[at+i])
	}
	return s, f.WidthOf(code), consumed, true
}
