package shape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLocationFormat is returned for custom formats whose ranges
// cannot describe a substring.
var ErrInvalidLocationFormat = errors.New("invalid location format")

// Location identifies a location-bearing shape inside a store layout.
// LocationNum is derived from TableID and BranchNum.
type Location struct {
	AreaID      string `json:"areaId,omitempty"`
	TableID     string `json:"tableId,omitempty"`
	BranchNum   string `json:"branchNum,omitempty"`
	LocationNum string `json:"locationNum,omitempty"`
}

// FormatKind selects how location numbers are displayed.
type FormatKind string

const (
	FormatStandard FormatKind = "STANDARD"
	FormatCustom   FormatKind = "CUSTOM"
)

// Range picks [Start, End) out of a location number.
type Range struct {
	Sequence int `json:"sequence" toml:"sequence"`
	Start    int `json:"startIndex" toml:"start"`
	End      int `json:"endIndex" toml:"end"`
}

// LocationFormat is the display format for location numbers.
type LocationFormat struct {
	Kind   FormatKind
	Ranges []Range
}

// LocationConfig carries the digit lengths and display format that location
// numbers are kept in sync with.
type LocationConfig struct {
	TableIDLength   int
	BranchNumLength int
	Format          LocationFormat
}

// Validate rejects ranges that cannot select a substring.
func (f LocationFormat) Validate() error {
	switch f.Kind {
	case "", FormatStandard:
		return nil
	case FormatCustom:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidLocationFormat, f.Kind)
	}
	for i, r := range f.Ranges {
		if r.Start < 0 || r.End < r.Start {
			return fmt.Errorf("%w: range %d is [%d,%d)", ErrInvalidLocationFormat, i, r.Start, r.End)
		}
	}
	return nil
}

// DeriveLocationNum composes a location number. Either component missing
// leaves the result empty.
func DeriveLocationNum(tableID, branchNum string) string {
	if tableID == "" || branchNum == "" {
		return ""
	}
	return tableID + branchNum
}

// FormatDisplayLocationNum renders num for display. Custom formats join one
// substring per range in declared order; ranges past the end of num
// contribute only what is there.
func FormatDisplayLocationNum(num string, f LocationFormat) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	if f.Kind != FormatCustom {
		return num, nil
	}
	var b strings.Builder
	for _, r := range f.Ranges {
		start, end := r.Start, r.End
		if start >= len(num) {
			continue
		}
		if end > len(num) {
			end = len(num)
		}
		b.WriteString(num[start:end])
	}
	return b.String(), nil
}

// Recompute refreshes LocationNum from its components. Components shorter
// than the configured length are zero padded; longer ones leave the number
// unset.
func (l *Location) Recompute(cfg LocationConfig) {
	table, ok := fitDigits(l.TableID, cfg.TableIDLength)
	if !ok {
		l.LocationNum = ""
		return
	}
	branch, ok := fitDigits(l.BranchNum, cfg.BranchNumLength)
	if !ok {
		l.LocationNum = ""
		return
	}
	l.LocationNum = DeriveLocationNum(table, branch)
}

// Display formats the location number with the configured format.
func (l Location) Display(cfg LocationConfig) (string, error) {
	return FormatDisplayLocationNum(l.LocationNum, cfg.Format)
}

func fitDigits(v string, length int) (string, bool) {
	if v == "" {
		return "", true
	}
	if length <= 0 {
		return v, true
	}
	if len(v) > length {
		return "", false
	}
	return strings.Repeat("0", length-len(v)) + v, true
}
