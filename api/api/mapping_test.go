/* mapping_test.go
 * Contains unit tests for the document mapping helpers
 * Authors: scouting-admin contributors
 */

package api

import (
	"testing"

	"scouting-admin/api/shared"
	"scouting-admin/api/store"

	"github.com/stretchr/testify/assert"
)

// region Value helper tests

func TestStringValue(t *testing.T) {
	assert.Equal(t, "abc", stringValue("abc"))
	assert.Equal(t, "254", stringValue(int64(254)))
	assert.Equal(t, "2.5", stringValue(2.5))
	assert.Equal(t, "true", stringValue(true))
	assert.Equal(t, "", stringValue(nil))
	assert.Equal(t, "", stringValue([]interface{}{"a"}))
}

func TestFloatValue(t *testing.T) {
	assert.Equal(t, 3.0, floatValue(int64(3)))
	assert.Equal(t, 3.9, floatValue(3.9))
	assert.Equal(t, 12.5, floatValue("12.5"))
	assert.Equal(t, 0.0, floatValue("twelve"))
	assert.Equal(t, 0.0, floatValue(nil))
}

func TestStringSlice(t *testing.T) {
	assert.Nil(t, stringSlice(nil))
	assert.Nil(t, stringSlice([]interface{}{}))
	assert.Nil(t, stringSlice("not a list"))
	assert.Equal(t, []string{"a", "7"}, stringSlice([]interface{}{"a", int64(7)}))
}

// endregion

// region Record mapping tests

func TestParamRoundTripThroughDocument(t *testing.T) {
	param := shared.ParamItem{Name: "Climb", Type: shared.ParamChoice, Description: "End position", Options: []string{"park", "onstage"}, Points: 3}

	doc := store.Document{ID: "teleop", Data: map[string]interface{}{"Climb": paramToDocument(param)}}

	assert.Equal(t, []shared.ParamItem{param}, paramsFromDocument(doc))
}

func TestParamsFromDocument_KeepsUnknownFieldsAndFractions(t *testing.T) {
	doc := store.Document{ID: "teleop", Data: map[string]interface{}{
		"C": map[string]interface{}{"name": "stale", "type": "counter", "points": 2.5, "max": int64(10)},
	}}

	params := paramsFromDocument(doc)

	assert.Equal(t, []shared.ParamItem{{
		Name:   "C",
		Type:   shared.ParamCounter,
		Points: 2.5,
		Extra:  map[string]interface{}{"max": int64(10)},
	}}, params)

	// Writing the param back keeps the extra field, and the known fields win over Extra
	params[0].Extra["points"] = 99.0
	written := paramToDocument(params[0])
	assert.Equal(t, int64(10), written["max"])
	assert.Equal(t, 2.5, written["points"])
	assert.Equal(t, "C", written["name"])
}

func TestParamsFromDocument_EmptyDocument(t *testing.T) {
	params := paramsFromDocument(store.Document{ID: "teleop"})

	assert.NotNil(t, params)
	assert.Empty(t, params)
}

func TestUserToDocument_OmitsUsername(t *testing.T) {
	doc := userToDocument(shared.User{Username: "a", TeamNumber: "42", Tags: []shared.UserTag{shared.TagScouter}})

	assert.NotContains(t, doc, "username")
	assert.Equal(t, []interface{}{"SCOUTER"}, doc["tags"])
}

func TestScouterFromSlot(t *testing.T) {
	assert.Equal(t, shared.Scouter{Key: "k", FirstName: "Ada", LastName: "Lovelace"},
		scouterFromSlot([]interface{}{"k", "Ada", "Lovelace"}))
	assert.Equal(t, shared.Scouter{Key: "k", FirstName: "undefined", LastName: "undefined"},
		scouterFromSlot([]interface{}{"k", ""}))
	assert.Equal(t, shared.Scouter{Key: "undefined", FirstName: "undefined", LastName: "undefined"},
		scouterFromSlot(nil))
}

// endregion
