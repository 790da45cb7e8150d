package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar_Finite(t *testing.T) {
	assert.NoError(t, Var(12.5, "finite"))
	assert.Error(t, Var(math.NaN(), "finite"))
	assert.Error(t, Var(math.Inf(1), "finite"))
	assert.NoError(t, Var(3, "finite"), "non-float kinds pass through")
}

func TestStruct_CombinedTags(t *testing.T) {
	type sample struct {
		Size float64 `validate:"gt=0,finite"`
		ID   string  `validate:"omitempty,uuid4"`
	}

	assert.NoError(t, Struct(sample{Size: 100}))
	assert.Error(t, Struct(sample{Size: 0}))
	assert.Error(t, Struct(sample{Size: math.Inf(1)}))
	assert.Error(t, Struct(sample{Size: 1, ID: "nope"}))
	assert.NoError(t, Struct(sample{Size: 1, ID: "00000000-0000-4000-8000-000000000000"}))
}
