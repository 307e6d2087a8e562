package names

// IsInitial reports whether s is a bare letter ("R") or a letter and a
// period ("R.").
func IsInitial(s string) bool {
	r := []rune(s)
	switch len(r) {
	case 1:
		return r[0] != '.'
	case 2:
		return r[1] == '.' && r[0] != '.'
	}
	return false
}

// ExpandInitial returns the longer of a and b when the shorter one is an
// initial of it ("R." and "Robert", or "R" and "Ro"). It returns "" when
// neither expands the other.
func ExpandInitial(a, b string) string {
	if a == "" || b == "" {
		return ""
	}
	ra, rb := []rune(a), []rune(b)
	if ra[0] != rb[0] {
		return ""
	}

	short, long := rb, ra
	if len(ra) < len(rb) {
		short, long = ra, rb
	}

	switch {
	case len(short) == 2 && short[1] == '.' && len(long) > 2:
		return string(long)
	case len(short) == 1 && len(long) > 1:
		return string(long)
	}
	return ""
}
