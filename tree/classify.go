// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"math"
	"regexp"

	"go4.org/mem"
)

// floatRE matches decimal and exponential floating-point syntax. It excludes
// forms accepted by strconv but not meant as numbers in document text, such as
// "inf", "nan", hexadecimal mantissas, and digit separators.
var floatRE = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)

// Classify infers the type of a scalar from its text, and returns a new
// scalar node holding the value. The rules are applied in order:
//
//  1. If text is an optional sign followed by decimal digits, and its value
//     fits in an int64, the node is an Int. Leading zeros are permitted.
//  2. Otherwise, if text is a decimal or exponential floating-point number
//     with a finite value, the node is a Float.
//  3. Otherwise, the node is a String whose value is text, unmodified.
//
// In both numeric cases the entire text must be consumed.
func Classify(text string) *Node {
	m := mem.S(text)
	if isIntSyntax(text) {
		if v, err := mem.ParseInt(m, 10, 64); err == nil {
			return &Node{typ: Int, ival: v}
		}
	}
	if floatRE.MatchString(text) {
		if v, err := mem.ParseFloat(m, 64); err == nil && !math.IsInf(v, 0) {
			return &Node{typ: Float, fval: v}
		}
	}
	return &Node{typ: String, sval: text}
}

// ClassifyType reports the type Classify would assign to text.
func ClassifyType(text string) Type { return Classify(text).typ }

// isIntSyntax reports whether s is an optional sign followed by one or more
// decimal digits.
func isIntSyntax(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
