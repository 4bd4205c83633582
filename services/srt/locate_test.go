package srt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func secondsCue(seq int, start, end float64) Cue {
	return Cue{
		Sequence: seq,
		Start:    time.Duration(start * float64(time.Second)),
		End:      time.Duration(end * float64(time.Second)),
	}
}

func Test_Locate(t *testing.T) {
	cues := []Cue{
		secondsCue(1, 0, 2),
		secondsCue(2, 2, 5),
		secondsCue(3, 6, 9),
	}

	idx, ok := Locate(cues, 1*time.Second)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// Boundary between two cues resolves to the one the midpoint probe hits
	idx, ok = Locate(cues, 2*time.Second)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	// Gap between cues is a valid "no active cue" zone
	_, ok = Locate(cues, 5500*time.Millisecond)
	assert.False(t, ok)

	idx, ok = Locate(cues, 9*time.Second)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = Locate(cues, 10*time.Second)
	assert.False(t, ok)
}

func Test_Locate_Empty(t *testing.T) {
	_, ok := Locate(nil, time.Second)
	assert.False(t, ok)
}

func Test_Locate_SingleCue(t *testing.T) {
	cues := []Cue{secondsCue(1, 3, 4)}

	idx, ok := Locate(cues, 3*time.Second)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = Locate(cues, 2*time.Second)
	assert.False(t, ok)
}

func Test_Locate_AllGaps(t *testing.T) {
	cues := make([]Cue, 0, 50)
	for i := 0; i < 50; i++ {
		cues = append(cues, secondsCue(i+1, float64(i*2), float64(i*2)+1))
	}

	for i := 0; i < 50; i++ {
		idx, ok := Locate(cues, time.Duration(i*2)*time.Second+500*time.Millisecond)
		assert.True(t, ok)
		assert.Equal(t, i, idx)

		_, ok = Locate(cues, time.Duration(i*2)*time.Second+1500*time.Millisecond)
		assert.False(t, ok)
	}
}
