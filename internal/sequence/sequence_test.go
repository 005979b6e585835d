package sequence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reseg/internal/events"
)

func labeled(rows ...any) events.Table {
	t := events.Table{}
	for i := 0; i < len(rows); i += 2 {
		t.Events = append(t.Events, events.Event{ModelState: rows[i].(string), Move: rows[i+1].(int)})
	}
	return t
}

func TestFromEventsSingleEvent(t *testing.T) {
	got, err := FromEvents(labeled("GATTA", 4))
	require.NoError(t, err)
	assert.Equal(t, "GATTA", got)
}

func TestFromEventsAllStays(t *testing.T) {
	got, err := FromEvents(labeled("ACGTA", 0, "ACGTA", 0, "CCCCC", 0))
	require.NoError(t, err)
	assert.Equal(t, "ACGTA", got)
}

func TestFromEventsMoves(t *testing.T) {
	got, err := FromEvents(labeled(
		"AAAAA", 0,
		"AAATT", 2,
		"AATTT", 1,
		"TTTGC", 2,
		"GCAGT", 5,
	))
	require.NoError(t, err)
	assert.Equal(t, "AAAAATTTGCGCAGT", got)
}

func TestFromEventsEmpty(t *testing.T) {
	got, err := FromEvents(events.Table{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFromEventsMoveWiderThanKmer(t *testing.T) {
	_, err := FromEvents(labeled("AAAAA", 0, "AAAAC", 6))
	require.Error(t, err)
	assert.True(t, errors.Is(err, events.ErrValidation))

	_, err = FromEvents(labeled("AAAAA", 0, "AAAAC", -1))
	assert.True(t, errors.Is(err, events.ErrValidation))
}

func TestForRead(t *testing.T) {
	assert.Equal(t, "ACGTT", ForRead("ACGTT", false))
	assert.Equal(t, "UUGCA", ForRead("ACGTT", true))
	assert.Equal(t, "", Reverse(""))
	assert.Equal(t, "ACGUu", ToRNA("ACGTt"))
}

func TestFastqRoundTrip(t *testing.T) {
	f, err := NewFastq("read_1 :", "ACGU")
	require.NoError(t, err)
	assert.Equal(t, "@read_1 :\nACGU\n+\n!!!!\n", f.String())

	back, err := ParseFastq(f.String())
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestFastqCheck(t *testing.T) {
	_, err := FastqWithQuality("r", "ACGT", "!!!")
	assert.Error(t, err)
	_, err = FastqWithQuality("", "A", "!")
	assert.Error(t, err)
	_, err = FastqWithQuality("r", "A", " ")
	assert.Error(t, err)

	_, err = ParseFastq("r\nACGT\n+\n!!!!\n")
	assert.Error(t, err)
	_, err = ParseFastq("@r\nACGT\n-\n!!!!\n")
	assert.Error(t, err)
	_, err = ParseFastq("@r\nACGT\n+\n!!!!\nextra\n")
	assert.Error(t, err)

	f, err := ParseFastq("@r x\r\nACGT\r\n+r x\r\nIIII\r\n")
	require.NoError(t, err)
	assert.Equal(t, "r x", f.Header)
	assert.Equal(t, "IIII", f.Qual)
}
