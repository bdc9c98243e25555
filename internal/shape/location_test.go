package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customFormat() LocationFormat {
	return LocationFormat{
		Kind: FormatCustom,
		Ranges: []Range{
			{Sequence: 1, Start: 0, End: 1},
			{Sequence: 2, Start: 1, End: 2},
			{Sequence: 3, Start: 2, End: 3},
			{Sequence: 4, Start: 4, End: 5},
			{Sequence: 5, Start: 5, End: 6},
			{Sequence: 6, Start: 6, End: 7},
		},
	}
}

func TestFormatDisplayLocationNumStandard(t *testing.T) {
	got, err := FormatDisplayLocationNum("0101", LocationFormat{Kind: FormatStandard})
	require.NoError(t, err)
	assert.Equal(t, "0101", got)
}

func TestFormatDisplayLocationNumCustom(t *testing.T) {
	got, err := FormatDisplayLocationNum("1234567", customFormat())
	require.NoError(t, err)
	assert.Equal(t, "123567", got)

	got, err = FormatDisplayLocationNum("123456", customFormat())
	require.NoError(t, err)
	assert.Equal(t, "12356", got)
}

func TestFormatDisplayLocationNumDeclaredOrder(t *testing.T) {
	f := LocationFormat{Kind: FormatCustom, Ranges: []Range{{Start: 2, End: 4}, {Start: 0, End: 2}}}
	got, err := FormatDisplayLocationNum("1234", f)
	require.NoError(t, err)
	assert.Equal(t, "3412", got)
}

func TestFormatDisplayLocationNumMalformed(t *testing.T) {
	f := LocationFormat{Kind: FormatCustom, Ranges: []Range{{Start: 3, End: 1}}}
	_, err := FormatDisplayLocationNum("1234", f)
	assert.ErrorIs(t, err, ErrInvalidLocationFormat)

	_, err = FormatDisplayLocationNum("1234", LocationFormat{Kind: "FANCY"})
	assert.ErrorIs(t, err, ErrInvalidLocationFormat)
}

func TestDeriveLocationNum(t *testing.T) {
	assert.Equal(t, "0101", DeriveLocationNum("01", "01"))
	assert.Equal(t, "", DeriveLocationNum("", "01"))
	assert.Equal(t, "", DeriveLocationNum("01", ""))
}

func TestLocationRecompute(t *testing.T) {
	cfg := LocationConfig{TableIDLength: 3, BranchNumLength: 2}

	l := Location{TableID: "7", BranchNum: "1"}
	l.Recompute(cfg)
	assert.Equal(t, "00701", l.LocationNum)
	assert.Len(t, l.LocationNum, cfg.TableIDLength+cfg.BranchNumLength)

	l.BranchNum = ""
	l.Recompute(cfg)
	assert.Empty(t, l.LocationNum)

	l = Location{TableID: "1234", BranchNum: "1"}
	l.Recompute(cfg)
	assert.Empty(t, l.LocationNum)
}
