/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package glyphlist provides glyph-name to Unicode rune resolution, modeled on Adobe's Glyph
// List (AGL). It covers the common Latin glyph names used by WinAnsi/MacRoman/Standard based
// fonts plus the algorithmic "uniXXXX"/"uXXXXXX" naming conventions, rather than embedding the
// full several-thousand-entry AGL table.
package glyphlist

import "strconv"

// ToRune returns the Unicode rune that glyph name `name` refers to.
func ToRune(name string) (rune, bool) {
	if r, ok := named[name]; ok {
		return r, true
	}
	if r, ok := fromUniName(name); ok {
		return r, true
	}
	// Some subsetted fonts use single-rune glyph names directly, e.g. "A", "é".
	if n := []rune(name); len(n) == 1 {
		return n[0], true
	}
	return 0, false
}

// FromRune returns a glyph name for rune `r`, preferring a named AGL entry and falling back to
// the "uniXXXX" convention.
func FromRune(r rune) (string, bool) {
	if name, ok := reverse[r]; ok {
		return name, true
	}
	return uniName(r), true
}

// fromUniName decodes the algorithmic "uniXXXX" (exactly 4 hex digits, BMP only) and "uXXXX"..
// "uXXXXXX" (4 to 6 hex digits) glyph naming conventions defined by the AGL specification.
func fromUniName(name string) (rune, bool) {
	switch {
	case len(name) == 7 && name[:3] == "uni":
		if v, err := strconv.ParseUint(name[3:], 16, 32); err == nil {
			return rune(v), true
		}
	case len(name) >= 5 && len(name) <= 7 && name[0] == 'u':
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	return 0, false
}

func uniName(r rune) string {
	return "uni" + padHex(uint32(r))
}

func padHex(v uint32) string {
	const hexdigits = "0123456789ABCDEF"
	var b [4]byte
	for i := 3; i >= 0; i-- {
		b[i] = hexdigits[v&0xf]
		v >>= 4
	}
	return string(b[:])
}

// named is a subset of the Adobe Glyph List: ASCII, the Latin-1 supplement and common
// punctuation. Other glyph names of StandardEncoding, WinAnsiEncoding and MacRomanEncoding
// (e.g. OE, Scaron, Lslash, dotlessi, breve) are not listed.
var named = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@',
	"bracketleft": '[', "backslash": '\\', "bracketright": ']',
	"asciicircum": '^', "underscore": '_', "grave": '`',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',
	"quoteleft": '‘', "quoteright": '’',
	"quotedblleft": '“', "quotedblright": '”',
	"quotesinglbase": '‚', "quotedblbase": '„',
	"endash": '–', "emdash": '—',
	"bullet": '•', "ellipsis": '…',
	"dagger": '†', "daggerdbl": '‡',
	"perthousand": '‰', "trademark": '™',
	"fi": 'ﬁ', "fl": 'ﬂ',
	"Euro": '€', "florin": 'ƒ',
	"circumflex": 'ˆ', "tilde": '˜',
	"exclamdown": '¡', "cent": '¢', "sterling": '£',
	"currency": '¤', "yen": '¥', "brokenbar": '¦',
	"section": '§', "dieresis": '¨', "copyright": '©',
	"ordfeminine": 'ª', "guillemotleft": '«', "logicalnot": '¬',
	"registered": '®', "macron": '¯', "degree": '°',
	"plusminus": '±', "acute": '´', "mu": 'µ',
	"paragraph": '¶', "periodcentered": '·', "cedilla": '¸',
	"ordmasculine": 'º', "guillemotright": '»',
	"onequarter": '¼', "onehalf": '½', "threequarters": '¾',
	"questiondown": '¿', "onesuperior": '¹', "twosuperior": '²',
	"threesuperior": '³', "multiply": '×', "divide": '÷',
	"Agrave": 'À', "Aacute": 'Á', "Acircumflex": 'Â',
	"Atilde": 'Ã', "Adieresis": 'Ä', "Aring": 'Å', "AE": 'Æ',
	"Ccedilla": 'Ç', "Egrave": 'È', "Eacute": 'É',
	"Ecircumflex": 'Ê', "Edieresis": 'Ë', "Igrave": 'Ì',
	"Iacute": 'Í', "Icircumflex": 'Î', "Idieresis": 'Ï',
	"Eth": 'Ð', "Ntilde": 'Ñ', "Ograve": 'Ò', "Oacute": 'Ó',
	"Ocircumflex": 'Ô', "Otilde": 'Õ', "Odieresis": 'Ö',
	"Oslash": 'Ø', "Ugrave": 'Ù', "Uacute": 'Ú',
	"Ucircumflex": 'Û', "Udieresis": 'Ü', "Yacute": 'Ý',
	"Thorn": 'Þ', "germandbls": 'ß',
	"agrave": 'à', "aacute": 'á', "acircumflex": 'â',
	"atilde": 'ã', "adieresis": 'ä', "aring": 'å', "ae": 'æ',
	"ccedilla": 'ç', "egrave": 'è', "eacute": 'é',
	"ecircumflex": 'ê', "edieresis": 'ë', "igrave": 'ì',
	"iacute": 'í', "icircumflex": 'î', "idieresis": 'ï',
	"eth": 'ð', "ntilde": 'ñ', "ograve": 'ò', "oacute": 'ó',
	"ocircumflex": 'ô', "otilde": 'õ', "odieresis": 'ö',
	"oslash": 'ø', "ugrave": 'ù', "uacute": 'ú',
	"ucircumflex": 'û', "udieresis": 'ü', "yacute": 'ý',
	"thorn": 'þ', "ydieresis": 'ÿ',
	"A": 'A', "B": 'B', "C": 'C', "D": 'D', "E": 'E', "F": 'F', "G": 'G',
	"H": 'H', "I": 'I', "J": 'J', "K": 'K', "L": 'L', "M": 'M', "N": 'N',
	"O": 'O', "P": 'P', "Q": 'Q', "R": 'R', "S": 'S', "T": 'T', "U": 'U',
	"V": 'V', "W": 'W', "X": 'X', "Y": 'Y', "Z": 'Z',
	"a": 'a', "b": 'b', "c": 'c', "d": 'd', "e": 'e', "f": 'f', "g": 'g',
	"h": 'h', "i": 'i', "j": 'j', "k": 'k', "l": 'l', "m": 'm', "n": 'n',
	"o": 'o', "p": 'p', "q": 'q', "r": 'r', "s": 's', "t": 't', "u": 'u',
	"v": 'v', "w": 'w', "x": 'x', "y": 'y', "z": 'z',
}

var reverse = func() map[rune]string {
	m := make(map[rune]string, len(named))
	for name, r := range named {
		if _, ok := m[r]; !ok {
			m[r] = name
		}
	}
	return m
}()
