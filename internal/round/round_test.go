package round

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	assert.Equal(t, 1.235, To(1.23456, 3))
	assert.Equal(t, 1.23, To(1.23456, 2))
	assert.Equal(t, 2.0, To(1.5, 0))
	assert.Equal(t, -1.23, To(-1.234, 2))
}

func TestKg(t *testing.T) {
	assert.Equal(t, 5000.0, Kg(100*50.0))
	assert.Equal(t, 0.667, Kg(2.0/3.0))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, 150000.0, Money(5000*30.0))
	assert.Equal(t, 33.33, Money(100.0/3.0))
}
