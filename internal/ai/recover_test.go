package ai

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAny(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestRecover_WellFormedShortCircuits(t *testing.T) {
	inputs := []string{
		`{"a":1}`,
		`{"text":"keeps ,} and ,] and ][ verbatim"}`,
		`  {"nested":{"list":[1,2,3]},"ok":true}  `,
		`[1,2,3]`,
		`"just a string"`,
	}
	for _, in := range inputs {
		var got interface{}
		require.NoError(t, Recover(in, &got), in)
		if diff := cmp.Diff(decodeAny(t, in), got); diff != "" {
			t.Errorf("Recover(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestRecover_StripsProse(t *testing.T) {
	obj := `{"title":"Plan","sessions":[{"duration":60}]}`
	raw := "Sure! Here is your plan:\n```json\n" + obj + "\n```\nGood luck."

	var got interface{}
	require.NoError(t, Recover(raw, &got))
	if diff := cmp.Diff(decodeAny(t, obj), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRecover_TrailingCommaObject(t *testing.T) {
	var got map[string]interface{}
	require.NoError(t, Recover(`{"a":1,}`, &got))
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, got)
}

func TestRecover_TrailingCommaArray(t *testing.T) {
	var got map[string]interface{}
	require.NoError(t, Recover(`{"a":[1,2,]}`, &got))
	assert.Equal(t, map[string]interface{}{"a": []interface{}{float64(1), float64(2)}}, got)
}

func TestRecover_AdjacentArrays(t *testing.T) {
	var got map[string]interface{}
	require.NoError(t, Recover(`{"grid":[[1,2] [3,4]]}`, &got))
	assert.Equal(t, map[string]interface{}{
		"grid": []interface{}{
			[]interface{}{float64(1), float64(2)},
			[]interface{}{float64(3), float64(4)},
		},
	}, got)
}

func TestRepairJSON_Order(t *testing.T) {
	assert.Equal(t, `{"m":[[1],[2]]}`, repairJSON(`{"m":[[1, ][2]]}`))
	assert.Equal(t, `{"a":[1]}  ],[{"b":2}`, repairJSON(`{"a":[1]}  ][{"b":2}`))
	assert.Equal(t, `{"x":[1],[2]}`, repairJSON(`{"x":[1,] [2,],}`))
}

func TestRecover_NoObject(t *testing.T) {
	for _, in := range []string{"", "no json here", "} backwards {", "[1,2"} {
		var v interface{}
		err := Recover(in, &v)
		assert.ErrorIs(t, err, ErrNoJSONObject, in)
	}
}

func TestRecover_UnrepairableSpan(t *testing.T) {
	var v interface{}
	err := Recover(`prefix {"a": nope} suffix`, &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSONObject)
}

func TestRecover_TypeMismatchIsAnError(t *testing.T) {
	var v struct {
		Duration int `json:"duration"`
	}
	assert.Error(t, Recover(`{"duration":"sixty"}`, &v))
}
