package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "cyberins/pkg/domain-errors"
)

func TestParseControlSpec(t *testing.T) {
	t.Run("parses parallel lists", func(t *testing.T) {
		parsed, err := ParseControlSpec("penetrationtests,stafftraining,backup-9,8,7")
		require.NoError(t, err)
		assert.Equal(t, ControlMap{
			"penetrationtests": IntControl(9),
			"stafftraining":    IntControl(8),
			"backup":           IntControl(7),
		}, parsed)
	})

	t.Run("rejects mismatched list lengths", func(t *testing.T) {
		_, err := ParseControlSpec("a,b-1")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects missing separator", func(t *testing.T) {
		_, err := ParseControlSpec("a,b")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects non-integer values", func(t *testing.T) {
		_, err := ParseControlSpec("a-high")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestControlValueJSON(t *testing.T) {
	t.Run("scalar round trip", func(t *testing.T) {
		encoded, err := json.Marshal(IntControl(9))
		require.NoError(t, err)
		assert.Equal(t, "9", string(encoded))

		var decoded ControlValue
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.True(t, decoded.Equal(IntControl(9)))
	})

	t.Run("nested round trip", func(t *testing.T) {
		value := NestedControl(ControlMap{"daily": IntControl(1), "offsite": IntControl(2)})
		encoded, err := json.Marshal(value)
		require.NoError(t, err)

		var decoded ControlValue
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.True(t, decoded.Equal(value))
	})

	t.Run("rejects non-integer scalars", func(t *testing.T) {
		var decoded ControlValue
		require.Error(t, json.Unmarshal([]byte(`"nine"`), &decoded))
	})
}

func TestSeverityCost(t *testing.T) {
	assert.Equal(t, int64(179000), SeverityCost("ransomware"))
	assert.Equal(t, int64(430000), SeverityCost("hacker"))
	assert.Equal(t, int64(72000), SeverityCost("phishing"))
	assert.Equal(t, DefaultSeverityCost, SeverityCost("somethingelse"))
}
