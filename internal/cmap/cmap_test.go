/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedLengthCMap = `
2 begincodespacerange
<00> <ff>
<0000> <ffff>
endcodespacerange
2 beginbfchar
<0041> <0041>
<00> <003F>
endbfchar
`

// TestLookupLongestPrefersLongerCodespace pins the longest-match rule: a 2-byte codespace
// match at a position takes priority over a shorter one, even when both are declared.
func TestLookupLongestPrefersLongerCodespace(t *testing.T) {
	cm, err := LoadCmapFromData([]byte(mixedLengthCMap), false)
	require.NoError(t, err)

	s, n, ok := cm.LookupLongest([]byte{0x00, 0x41, 0x00})
	require.True(t, ok)
	assert.Equal(t, "A", s)
	assert.Equal(t, 2, n)
}

// TestLookupLongestFallsBackToShorterCodespace verifies the full decode of a mixed-length
// stream: the 2-byte entry is consumed first, then the remaining single byte falls back to
// the 1-byte codespace.
func TestLookupLongestFallsBackToShorterCodespace(t *testing.T) {
	cm, err := LoadCmapFromData([]byte(mixedLengthCMap), false)
	require.NoError(t, err)

	var out string
	data := []byte{0x00, 0x41, 0x00}
	for i := 0; i < len(data); {
		s, n, ok := cm.LookupLongest(data[i:])
		require.True(t, ok, "no match at offset %d", i)
		out += s
		i += n
	}
	assert.Equal(t, "A?", out)
}
