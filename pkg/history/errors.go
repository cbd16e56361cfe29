package history

import "errors"

// ErrBirthDateUnset is returned when a series is requested before the birth
// date has been configured.
var ErrBirthDateUnset = errors.New("birth date is not set")
