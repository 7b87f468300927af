package domain

import (
	"fmt"
	"strings"
)

// Verdict is the final classification of a target.
type Verdict uint8

const (
	Active Verdict = iota
	Inactive
)

func (v Verdict) String() string {
	if v == Active {
		return "ACTIVE"
	}
	return "INACTIVE"
}

// Filter selects a verdict category to drop from the output files.
type Filter uint8

const (
	FilterNone Filter = iota
	FilterActive
	FilterInactive
)

// ParseFilter turns an exclusion flag value into a Filter. The empty
// string excludes nothing. Anything other than ACTIVE or INACTIVE (any
// case) is rejected so that a typo cannot silently disable the filter.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return FilterNone, nil
	case "ACTIVE":
		return FilterActive, nil
	case "INACTIVE":
		return FilterInactive, nil
	}
	return FilterNone, fmt.Errorf("unknown exclude value %q (want ACTIVE or INACTIVE)", s)
}

// Excludes reports whether targets classified as v should be dropped.
func (f Filter) Excludes(v Verdict) bool {
	return (f == FilterActive && v == Active) || (f == FilterInactive && v == Inactive)
}
