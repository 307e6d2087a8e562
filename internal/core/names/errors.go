package names

import (
	"errors"
	"fmt"
)

// ErrFatal marks data errors that must halt a batch until the input
// is corrected by hand. Use errors.Is(err, ErrFatal) to detect them.
var ErrFatal = errors.New("fatal name resolution error")

// UnexpectedTitleError is returned when a parse leaves an honorific in the
// title position. The raw string needs a manual correction.
type UnexpectedTitleError struct {
	Raw    string
	Title  string
	Parsed Name
}

func (e *UnexpectedTitleError) Error() string {
	return fmt.Sprintf("extra fields in name %q: title %q (parsed as %q)", e.Raw, e.Title, e.Parsed.String())
}

// Is makes the error match ErrFatal.
func (e *UnexpectedTitleError) Is(target error) bool { return target == ErrFatal }

// AmbiguousNicknameError is returned when two given names list each other as
// nicknames and neither is on the canonical allow-list.
type AmbiguousNicknameError struct {
	A string
	B string
}

func (e *AmbiguousNicknameError) Error() string {
	return fmt.Sprintf("ambiguous nicknames: %s vs. %s", e.A, e.B)
}

// Is makes the error match ErrFatal.
func (e *AmbiguousNicknameError) Is(target error) bool { return target == ErrFatal }
