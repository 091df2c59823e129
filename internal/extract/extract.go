package extract

import "strconv"

// TrimPadding strips leading/trailing spaces, tabs, and carriage returns,
// matching spec.md §6's ignorepadding option. It is only ever applied to
// fields that were not quoted (a quoted field's padding is data).
func TrimPadding(b []byte) []byte {
	i, j := 0, len(b)
	for i < j && isPad(b[i]) {
		i++
	}
	for j > i && isPad(b[j-1]) {
		j--
	}
	return b[i:j]
}

func isPad(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }

// Int64 parses b as a base-10 signed integer. An empty field is never a
// valid integer; callers check NA membership first.
func Int64(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	return v, err == nil
}

// Float64 parses b as a decimal float (spec.md §6 only supports '.' as the
// decimal separator; Options.Validate rejects any other configuration
// before tokenizing begins).
func Float64(b []byte) (float64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(b), 64)
	return v, err == nil
}

// Bool matches b against the configured true/false token sets.
func Bool(s string, trueSet, falseSet StringSet) (value bool, ok bool) {
	if trueSet.Contains(s) {
		return true, true
	}
	if falseSet.Contains(s) {
		return false, true
	}
	return false, false
}
