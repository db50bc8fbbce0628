// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"regexp"
	"strings"
)

// Rule pairs an output pattern with the outcome it signals. A rule
// matches a line if the line contains [Rule.Literal], or, when
// [Rule.Regexp] is set, if the regular expression matches the line.
type Rule struct {
	// Literal is the substring to look for.
	Literal string

	// Regexp is used instead of Literal when it is non-nil.
	Regexp *regexp.Regexp

	// Code is [Success] for success rules and the failure
	// classification for failure rules.
	Code ErrorCode
}

// Literal returns a rule matching lines that contain s.
func Literal(s string, code ErrorCode) Rule {
	return Rule{Literal: s, Code: code}
}

// Regexp returns a rule matching lines that match the given
// regular expression. It panics if the expression does not compile,
// so it should be used for package-level rule tables.
func Regexp(expr string, code ErrorCode) Rule {
	return Rule{Regexp: regexp.MustCompile(expr), Code: code}
}

// SuccessRules returns success rules for each of the given literals.
func SuccessRules(literals ...string) []Rule {
	rules := make([]Rule, len(literals))
	for i, l := range literals {
		rules[i] = Literal(l, Success)
	}
	return rules
}

// Match returns whether the rule matches the given line.
func (r Rule) Match(line string) bool {
	if r.Regexp != nil {
		return r.Regexp.MatchString(line)
	}
	return r.Literal != "" && strings.Contains(line, r.Literal)
}

func (r Rule) String() string {
	if r.Regexp != nil {
		return r.Regexp.String()
	}
	return r.Literal
}

// firstMatch returns the first rule in rules that matches line.
func firstMatch(rules []Rule, line string) (Rule, bool) {
	for _, r := range rules {
		if r.Match(line) {
			return r, true
		}
	}
	return Rule{}, false
}
