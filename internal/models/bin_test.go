package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinAvailable(t *testing.T) {
	capacity := 50
	b := &Bin{Capacity: &capacity, CurrentStock: 10}
	assert.Equal(t, 40, b.Available())

	uncapped := &Bin{CurrentStock: 10}
	assert.Equal(t, 0, uncapped.Available(), "uncapped bins report no verifiable room")

	full := &Bin{Capacity: &capacity, CurrentStock: 50}
	assert.Equal(t, 0, full.Available())
}
