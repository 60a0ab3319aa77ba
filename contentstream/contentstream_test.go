/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wovenfox/pdftext/internal/transform"
)

func parseOps(t *testing.T, content string) []*ContentStreamOperation {
	t.Helper()
	ops, err := NewContentStreamParser(content).Parse()
	require.NoError(t, err)
	return []*ContentStreamOperation(*ops)
}

func TestParserReadsOperandsAndOperators(t *testing.T) {
	ops := parseOps(t, "100 200 Td (Hi) Tj")

	require.Len(t, ops, 2)
	assert.Equal(t, "Td", ops[0].Operand)
	require.Len(t, ops[0].Params, 2)
	assert.Equal(t, "Tj", ops[1].Operand)
	require.Len(t, ops[1].Params, 1)
}

// TestBalancedQQLeavesCTMUnchanged pins property #7: a balanced q ... Q sequence restores the
// CTM that was active before the q, regardless of any cm inside it.
func TestBalancedQQLeavesCTMUnchanged(t *testing.T) {
	ops := parseOps(t, "q 2 0 0 2 10 10 cm Q")
	proc := NewContentStreamProcessor(ops)

	var lastCTM transform.Matrix
	proc.AddHandler(HandlerConditionEnumAllOperands, "", func(op *ContentStreamOperation, gs GraphicsState, res *Resources) error {
		lastCTM = gs.CTM
		return nil
	})

	err := proc.Process(transform.IdentityMatrix(), nil)
	require.NoError(t, err)
	assert.Equal(t, transform.IdentityMatrix(), lastCTM)
}

func TestUnmatchedQOnEmptyStackIsNoOp(t *testing.T) {
	ops := parseOps(t, "Q 1 0 0 1 5 5 cm")
	proc := NewContentStreamProcessor(ops)

	err := proc.Process(transform.IdentityMatrix(), nil)
	require.NoError(t, err)

	x, y := proc.graphicsState.CTM.Transform(0, 0)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 5.0, y)
}

func TestCmConcatenatesOntoCTM(t *testing.T) {
	ops := parseOps(t, "1 0 0 1 10 20 cm")
	proc := NewContentStreamProcessor(ops)

	err := proc.Process(transform.IdentityMatrix(), nil)
	require.NoError(t, err)

	x, y := proc.graphicsState.CTM.Transform(0, 0)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
}
