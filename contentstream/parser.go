/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wovenfox/pdftext/common"
	"github.com/wovenfox/pdftext/internal/parseutils"
	"github.com/wovenfox/pdftext/objstore"
)

// ContentStreamParser tokenizes a content stream into operations: a value stack followed by
// an operator name.
type ContentStreamParser struct {
	reader *bufio.Reader
}

// NewContentStreamParser creates a new instance of the content stream parser from an input content
// stream string.
func NewContentStreamParser(contentStr string) *ContentStreamParser {
	parser := ContentStreamParser{}
	buffer := bytes.NewBufferString(contentStr + "\n") // Add newline at end to get last operand without EOF error.
	parser.reader = bufio.NewReader(buffer)
	return &parser
}

// Parse parses all operations in the content stream, returning them in document order.
func (csp *ContentStreamParser) Parse() (*ContentStreamOperations, error) {
	operations := ContentStreamOperations{}

	for {
		operation := ContentStreamOperation{}

		for {
			obj, isOperand, err := csp.parseObject()
			if err != nil {
				if err == io.EOF {
					return &operations, nil
				}
				return &operations, err
			}
			if isOperand {
				if s, ok := obj.(*objstore.String); ok {
					operation.Operand = s.Str()
				}
				operations = append(operations, &operation)
				break
			}
			operation.Params = append(operation.Params, obj)
		}
	}
}

// skipSpaces skips over whitespace, returning the number of bytes skipped.
func (csp *ContentStreamParser) skipSpaces() (int, error) {
	cnt := 0
	for {
		bb, err := csp.reader.Peek(1)
		if err != nil {
			return cnt, err
		}
		if parseutils.IsWhiteSpace(bb[0]) {
			csp.reader.ReadByte()
			cnt++
		} else {
			break
		}
	}
	return cnt, nil
}

// skipComments skips over comments and whitespace, handling multiple consecutive comments.
func (csp *ContentStreamParser) skipComments() error {
	if _, err := csp.skipSpaces(); err != nil {
		return err
	}

	isFirst := true
	for {
		bb, err := csp.reader.Peek(1)
		if err != nil {
			common.Log.Debug("Error %s", err.Error())
			return err
		}
		if isFirst && bb[0] != '%' {
			return nil
		}
		isFirst = false

		if bb[0] != '\r' && bb[0] != '\n' {
			csp.reader.ReadByte()
		} else {
			break
		}
	}

	return csp.skipComments()
}

// parseName parses a name starting with '/'.
func (csp *ContentStreamParser) parseName() (objstore.Name, error) {
	name := ""
	nameStarted := false
	for {
		bb, err := csp.reader.Peek(1)
		if err == io.EOF {
			break
		}
		if err != nil {
			return objstore.Name(name), err
		}

		if !nameStarted {
			if bb[0] == '/' {
				nameStarted = true
				csp.reader.ReadByte()
			} else {
				return objstore.Name(name), fmt.Errorf("invalid name: (%c)", bb[0])
			}
		} else {
			if parseutils.IsWhiteSpace(bb[0]) {
				break
			} else if bb[0] == '/' || bb[0] == '[' || bb[0] == '(' || bb[0] == ']' || bb[0] == '<' || bb[0] == '>' {
				break
			} else if bb[0] == '#' {
				hexcode, err := csp.reader.Peek(3)
				if err != nil {
					return objstore.Name(name), err
				}
				csp.reader.Discard(3)
				code, err := hex.DecodeString(string(hexcode[1:3]))
				if err != nil {
					return objstore.Name(name), err
				}
				name += string(code)
			} else {
				b, _ := csp.reader.ReadByte()
				name += string(b)
			}
		}
	}
	return objstore.Name(name), nil
}

// parseNumber parses an Integer or Float object (PDF spec 7.3.3).
func (csp *ContentStreamParser) parseNumber() (objstore.Object, error) {
	o, err := parseutils.ParseNumber(csp.reader)
	if err != nil {
		return nil, err
	}
	switch v := o.(type) {
	case float64:
		f := objstore.Float(v)
		return &f, nil
	case int64:
		i := objstore.Integer(v)
		return &i, nil
	}
	return nil, fmt.Errorf("unhandled number type %T", o)
}

// parseString parses a literal string, starting with '(' and ending with ')'.
func (csp *ContentStreamParser) parseString() (*objstore.String, error) {
	csp.reader.ReadByte()

	var buf []byte
	count := 1
	for {
		bb, err := csp.reader.Peek(1)
		if err != nil {
			return objstore.MakeString(string(buf)), err
		}

		if bb[0] == '\\' {
			csp.reader.ReadByte()
			b, err := csp.reader.ReadByte()
			if err != nil {
				return objstore.MakeString(string(buf)), err
			}

			if parseutils.IsOctalDigit(b) {
				bb, err := csp.reader.Peek(2)
				if err != nil {
					return objstore.MakeString(string(buf)), err
				}
				var numeric []byte
				numeric = append(numeric, b)
				for _, val := range bb {
					if parseutils.IsOctalDigit(val) {
						numeric = append(numeric, val)
					} else {
						break
					}
				}
				csp.reader.Discard(len(numeric) - 1)

				code, err := strconv.ParseUint(string(numeric), 8, 32)
				if err != nil {
					return objstore.MakeString(string(buf)), err
				}
				buf = append(buf, byte(code))
				continue
			}

			switch b {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '(':
				buf = append(buf, '(')
			case ')':
				buf = append(buf, ')')
			case '\\':
				buf = append(buf, '\\')
			}
			continue
		} else if bb[0] == '(' {
			count++
		} else if bb[0] == ')' {
			count--
			if count == 0 {
				csp.reader.ReadByte()
				break
			}
		}

		b, _ := csp.reader.ReadByte()
		buf = append(buf, b)
	}

	return objstore.MakeString(string(buf)), nil
}

// parseHexString parses a hex string starting with '<' and ending with '>'.
func (csp *ContentStreamParser) parseHexString() (*objstore.String, error) {
	csp.reader.ReadByte()

	hextable := []byte("0123456789abcdefABCDEF")

	var tmp []byte
	for {
		csp.skipSpaces()

		bb, err := csp.reader.Peek(1)
		if err != nil {
			return objstore.MakeHexString(""), err
		}
		if bb[0] == '>' {
			csp.reader.ReadByte()
			break
		}

		b, _ := csp.reader.ReadByte()
		if bytes.IndexByte(hextable, b) >= 0 {
			tmp = append(tmp, b)
		}
	}

	if len(tmp)%2 == 1 {
		tmp = append(tmp, '0')
	}

	buf, _ := hex.DecodeString(string(tmp))
	return objstore.MakeHexString(string(buf)), nil
}

// parseArray parses an array, starting with '[' and ending with ']'.
func (csp *ContentStreamParser) parseArray() (*objstore.Array, error) {
	arr := objstore.MakeArray()

	csp.reader.ReadByte()

	for {
		csp.skipSpaces()

		bb, err := csp.reader.Peek(1)
		if err != nil {
			return arr, err
		}
		if bb[0] == ']' {
			csp.reader.ReadByte()
			break
		}

		obj, _, err := csp.parseObject()
		if err != nil {
			return arr, err
		}
		arr.Append(obj)
	}

	return arr, nil
}

// parseBool parses a boolean keyword, "true" or "false".
func (csp *ContentStreamParser) parseBool() (objstore.Bool, error) {
	bb, err := csp.reader.Peek(4)
	if err != nil {
		return objstore.Bool(false), err
	}
	if len(bb) >= 4 && string(bb[:4]) == "true" {
		csp.reader.Discard(4)
		return objstore.Bool(true), nil
	}

	bb, err = csp.reader.Peek(5)
	if err != nil {
		return objstore.Bool(false), err
	}
	if len(bb) >= 5 && string(bb[:5]) == "false" {
		csp.reader.Discard(5)
		return objstore.Bool(false), nil
	}

	return objstore.Bool(false), errors.New("unexpected boolean string")
}

// parseNull parses the "null" keyword.
func (csp *ContentStreamParser) parseNull() (objstore.Null, error) {
	_, err := csp.reader.Discard(4)
	return objstore.Null{}, err
}

// parseDict parses a dictionary, starting with '<<' and ending with '>>'.
func (csp *ContentStreamParser) parseDict() (*objstore.Dictionary, error) {
	dict := objstore.MakeDict()

	c, _ := csp.reader.ReadByte()
	if c != '<' {
		return nil, errors.New("invalid dict")
	}
	c, _ = csp.reader.ReadByte()
	if c != '<' {
		return nil, errors.New("invalid dict")
	}

	for {
		csp.skipSpaces()

		bb, err := csp.reader.Peek(2)
		if err != nil {
			return nil, err
		}
		if bb[0] == '>' && bb[1] == '>' {
			csp.reader.ReadByte()
			csp.reader.ReadByte()
			break
		}

		keyName, err := csp.parseName()
		if err != nil {
			return nil, err
		}

		csp.skipSpaces()

		val, _, err := csp.parseObject()
		if err != nil {
			return nil, err
		}
		dict.Set(keyName, val)
	}

	return dict, nil
}

// parseOperand parses an operator name, a bare word not starting with any delimiter.
func (csp *ContentStreamParser) parseOperand() (*objstore.String, error) {
	var buf []byte
	for {
		bb, err := csp.reader.Peek(1)
		if err != nil {
			return objstore.MakeString(string(buf)), err
		}
		if parseutils.IsDelimiter(bb[0]) || parseutils.IsWhiteSpace(bb[0]) {
			break
		}
		b, _ := csp.reader.ReadByte()
		buf = append(buf, b)
	}
	return objstore.MakeString(string(buf)), nil
}

// parseObject parses a single object or operand, returning the object, whether it is an
// operand (a bare operator name rather than a value), and an error, if any.
func (csp *ContentStreamParser) parseObject() (obj objstore.Object, isop bool, err error) {
	csp.skipSpaces()
	for {
		bb, err := csp.reader.Peek(2)
		if err != nil {
			return nil, false, err
		}

		switch {
		case bb[0] == '%':
			if err := csp.skipComments(); err != nil {
				return nil, false, err
			}
			continue
		case bb[0] == '/':
			name, err := csp.parseName()
			return name, false, err
		case bb[0] == '(':
			str, err := csp.parseString()
			return str, false, err
		case bb[0] == '<' && bb[1] != '<':
			str, err := csp.parseHexString()
			return str, false, err
		case bb[0] == '[':
			arr, err := csp.parseArray()
			return arr, false, err
		case bb[0] == '<' && bb[1] == '<':
			dict, err := csp.parseDict()
			return dict, false, err
		case parseutils.IsDecimalDigit(bb[0]) || bb[0] == '.' || bb[0] == '+' || (bb[0] == '-' && (parseutils.IsDecimalDigit(bb[1]) || bb[1] == '.')):
			number, err := csp.parseNumber()
			return number, false, err
		default:
			bb, _ = csp.reader.Peek(5)
			peekStr := string(bb)

			if len(peekStr) > 3 && peekStr[:4] == "null" {
				null, err := csp.parseNull()
				return null, false, err
			} else if len(peekStr) > 4 && peekStr[:5] == "false" {
				b, err := csp.parseBool()
				return b, false, err
			} else if len(peekStr) > 3 && peekStr[:4] == "true" {
				b, err := csp.parseBool()
				return b, false, err
			}

			operand, err := csp.parseOperand()
			if err != nil {
				return operand, false, err
			}
			if len(operand.Str()) < 1 {
				return operand, false, ErrInvalidOperand
			}
			return operand, true, nil
		}
	}
}
