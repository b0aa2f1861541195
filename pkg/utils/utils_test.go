package utils

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]{10}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}

func TestPrettyJson(t *testing.T) {
	out, err := PrettyJson(map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"rows\": 3\n}", out)

	out, err = PrettyJson([]byte(`{"rows":3}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"rows\": 3\n}", out)

	_, err = PrettyJson([]byte(`{`))
	assert.Error(t, err)
}

func TestPrettyJson_NestedStruct(t *testing.T) {
	type stage struct {
		Name string `json:"name"`
		Rows int    `json:"rows"`
	}
	summary := struct {
		RunID  string  `json:"run_id"`
		Stages []stage `json:"stages"`
	}{RunID: "x", Stages: []stage{{Name: "load", Rows: 2}}}

	var out string
	require.NotPanics(t, func() {
		var err error
		out, err = PrettyJson(&summary)
		require.NoError(t, err)
	})
	assert.Equal(t, "{\n\t\"run_id\": \"x\",\n\t\"stages\": [\n\t\t{\n\t\t\t\"name\": \"load\",\n\t\t\t\"rows\": 2\n\t\t}\n\t]\n}", out)
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 1234.57, RoundWithTwoDecimalPlace(1234.5678))
	assert.Equal(t, -0.5, RoundWithTwoDecimalPlace(-0.499))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.True(t, math.IsNaN(RoundWithTwoDecimalPlace(math.NaN())))
}
