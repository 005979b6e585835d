package accuracy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracyIdentical(t *testing.T) {
	acc, err := Accuracy("ACGTTGCAAGCT", "ACGTTGCAAGCT")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, acc, 1e-12)
}

func TestAccuracySoftClipsTruncatedEnds(t *testing.T) {
	ref := "GGGGACGTTGCAAGCTTAGCCCCC"
	acc, err := Accuracy(ref, "ACGTTGCAAGCTTAG")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, acc, 1e-12)

	r, err := Align(ref, "ACGTTGCAAGCTTAG")
	require.NoError(t, err)
	assert.Equal(t, 4, r.RefStart)
	assert.Equal(t, 19, r.RefEnd)
	assert.Equal(t, 15, r.Matches)
}

func TestAccuracyInternalMismatch(t *testing.T) {
	ref := "ACGTTGCAAGCTTAGCATGC"
	qry := "ACGTTGCAAGGTTAGCATGC"
	acc, err := Accuracy(ref, qry)
	require.NoError(t, err)
	assert.InDelta(t, 19.0/20.0, acc, 1e-12)
}

func TestAccuracyRNAComparedAsDNA(t *testing.T) {
	acc, err := Accuracy("ACGUUGCAAGCU", "acgttgcaagct")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, acc, 1e-12)
}

func TestAccuracyEmpty(t *testing.T) {
	acc, err := Accuracy("", "ACGT")
	require.NoError(t, err)
	assert.Equal(t, 0.0, acc)
}

func TestAccuracyRejectsUnknownLetters(t *testing.T) {
	_, err := Accuracy("ACGTNACGT", "ACGTACGT")
	assert.Error(t, err)
}
