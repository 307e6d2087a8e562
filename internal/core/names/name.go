// Package names contains the pure identity-resolution logic for legislator names:
// normalizing scraped display strings, nickname lookup and the pairwise
// equivalence test shared by the vote matcher and the merge engine.
// Nothing in this package performs I/O.
package names

import "strings"

// Name is a structured person name. Last is required for any parsed person;
// an empty Last never compares equal to anything.
type Name struct {
	First  string
	Middle string
	Last   string
	Suffix string
}

// Fields returns the four name parts in storage order.
func (n Name) Fields() [4]string {
	return [4]string{n.First, n.Middle, n.Last, n.Suffix}
}

// HasQualifiers reports whether anything beyond the last name is present.
func (n Name) HasQualifiers() bool {
	return n.First != "" || n.Middle != "" || n.Suffix != ""
}

// IsZero reports whether no part of the name is set.
func (n Name) IsZero() bool {
	return n == Name{}
}

// String renders the name in display order, skipping empty parts.
func (n Name) String() string {
	parts := make([]string, 0, 4)
	for _, p := range n.Fields() {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
