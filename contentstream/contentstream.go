/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package contentstream implements a tokenizer and operator-dispatch loop for PDF content
// streams: the instruction sequences, made of a value stack plus operator names, that
// describe what to paint (or, for the text-extraction core, what text to emit) on a page.
package contentstream

import (
	"errors"

	"github.com/wovenfox/pdftext/objstore"
)

// Errors returned while tokenizing a content stream or processing its operators.
var (
	ErrInvalidOperand   = errors.New("contentstream: invalid operand")
	errTooFewParameters = errors.New("contentstream: too few parameters")
)

// ContentStreamOperation represents a single operation, e.g. "Tf" with its preceding operands,
// as it occurs in a content stream: zero or more operands followed by one operator.
type ContentStreamOperation struct {
	Params  []objstore.Object
	Operand string
}

// ContentStreamOperations represents a sequence of ContentStreamOperation in the order they
// appear in a content stream.
type ContentStreamOperations []*ContentStreamOperation
