/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import (
	"github.com/wovenfox/pdftext/common"
	"github.com/wovenfox/pdftext/internal/transform"
	"github.com/wovenfox/pdftext/objstore"
)

// GraphicsState tracks the portion of the PDF graphics state that the text-extraction
// core cares about: the current transformation matrix. Text-specific state (Tm, Tfs,
// Th, Tc, Tw, TL, rise) is owned by the coordinates package, which is driven by the
// handlers registered on the ContentStreamProcessor below.
type GraphicsState struct {
	CTM transform.Matrix
}

// GraphicStateStack represents a stack of GraphicsState, used to implement q/Q.
type GraphicStateStack []GraphicsState

// Push pushes `gs` on the `gsStack`.
func (gsStack *GraphicStateStack) Push(gs GraphicsState) {
	*gsStack = append(*gsStack, gs)
}

// Pop pops and returns the topmost GraphicsState off the `gsStack`.
func (gsStack *GraphicStateStack) Pop() GraphicsState {
	gs := (*gsStack)[len(*gsStack)-1]
	*gsStack = (*gsStack)[:len(*gsStack)-1]
	return gs
}

// Transform returns coordinates x, y transformed by the CTM.
func (gs *GraphicsState) Transform(x, y float64) (float64, float64) {
	return gs.CTM.Transform(x, y)
}

// ContentStreamProcessor walks a list of content stream operations, maintaining the
// CTM save-stack and allowing external handlers to be registered for individual
// operands (or all operands), for example to extract text.
type ContentStreamProcessor struct {
	graphicsStack GraphicStateStack
	operations    []*ContentStreamOperation
	graphicsState GraphicsState

	handlers []handlerEntry
}

// HandlerFunc is the function syntax that a ContentStreamProcessor handler must implement.
type HandlerFunc func(op *ContentStreamOperation, gs GraphicsState, resources *Resources) error

type handlerEntry struct {
	Condition HandlerConditionEnum
	Operand   string
	Handler   HandlerFunc
}

// HandlerConditionEnum represents the type of operand a content stream handler reacts to.
type HandlerConditionEnum int

// Handler types.
const (
	HandlerConditionEnumOperand     HandlerConditionEnum = iota // Single (specific) operand.
	HandlerConditionEnumAllOperands                             // All operands.
)

// All returns true if `hce` is equivalent to HandlerConditionEnumAllOperands.
func (hce HandlerConditionEnum) All() bool {
	return hce == HandlerConditionEnumAllOperands
}

// Operand returns true if `hce` is equivalent to HandlerConditionEnumOperand.
func (hce HandlerConditionEnum) Operand() bool {
	return hce == HandlerConditionEnumOperand
}

// NewContentStreamProcessor returns a new ContentStreamProcessor for operations `ops`.
func NewContentStreamProcessor(ops []*ContentStreamOperation) *ContentStreamProcessor {
	csp := ContentStreamProcessor{}
	csp.graphicsStack = GraphicStateStack{}
	csp.graphicsState = GraphicsState{CTM: transform.IdentityMatrix()}
	csp.handlers = []handlerEntry{}
	csp.operations = ops
	return &csp
}

// AddHandler adds a new ContentStreamProcessor `handler` of type `condition` for `operand`.
func (proc *ContentStreamProcessor) AddHandler(condition HandlerConditionEnum, operand string, handler HandlerFunc) {
	proc.handlers = append(proc.handlers, handlerEntry{Condition: condition, Operand: operand, Handler: handler})
}

// Process processes the entire list of operations, starting the CTM at `initialCTM`
// (derived from page rotation/CropBox by the caller). Maintains the graphics state
// that is passed to any handlers triggered during processing.
func (proc *ContentStreamProcessor) Process(initialCTM transform.Matrix, resources *Resources) error {
	proc.graphicsState.CTM = initialCTM

	for _, op := range proc.operations {
		var err error

		switch op.Operand {
		case "q":
			proc.graphicsStack.Push(proc.graphicsState)
		case "Q":
			if len(proc.graphicsStack) == 0 {
				common.Log.Debug("WARN: invalid `Q` operator. Graphics state stack is empty. Skipping.")
				continue
			}
			proc.graphicsState = proc.graphicsStack.Pop()
		case "cm":
			err = proc.handleCommandCM(op)
		}
		if err != nil {
			common.Log.Debug("Processor handling error (%s): %v", op.Operand, err)
			return err
		}

		for _, entry := range proc.handlers {
			var herr error
			if entry.Condition.All() {
				herr = entry.Handler(op, proc.graphicsState, resources)
			} else if entry.Condition.Operand() && op.Operand == entry.Operand {
				herr = entry.Handler(op, proc.graphicsState, resources)
			}
			if herr != nil {
				common.Log.Debug("Processor handler error: %v", herr)
				return herr
			}
		}
	}

	return nil
}

// cm: concatenates an affine transform onto the CTM.
func (proc *ContentStreamProcessor) handleCommandCM(op *ContentStreamOperation) error {
	if len(op.Params) != 6 {
		common.Log.Debug("ERROR: Invalid number of parameters for cm: %d", len(op.Params))
		return errTooFewParameters
	}
	f, err := objstore.NumbersToFloat64Slice(op.Params)
	if err != nil {
		return err
	}
	m := transform.NewMatrix(f[0], f[1], f[2], f[3], f[4], f[5])
	proc.graphicsState.CTM.Concat(m)
	return nil
}
