package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeRetryBackoff(t *testing.T) {
	cases := []struct {
		intento int
		want    time.Duration
	}{
		{1, time.Minute},
		{2, 2 * time.Minute},
		{3, 4 * time.Minute},
		{6, 32 * time.Minute},
		{7, time.Hour},  // 64m supera el tope
		{12, time.Hour}, // el tope se mantiene
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, computeRetryBackoff(tc.intento), "intento %d", tc.intento)
	}
}
