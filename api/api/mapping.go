/* mapping.go
 * Contains the helpers that convert between store documents and the shared domain records. Documents are
 * schemaless, so reads are lenient: missing or mistyped fields become zero values
 * Authors: scouting-admin contributors
 */

package api

import (
	"sort"
	"strconv"

	"scouting-admin/api/shared"
	"scouting-admin/api/store"
)

// missingScouterField is what an empty qual slot reads as
const missingScouterField = "undefined"

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

// floatValue keeps fractional values as stored
func floatValue(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case string:
		n, _ := strconv.ParseFloat(val, 64)
		return n
	}
	return 0
}

// stringSlice returns nil for anything that is not a non-empty list
func stringSlice(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, stringValue(item))
	}
	return out
}

func toInterfaceSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i := range values {
		out[i] = values[i]
	}
	return out
}

func seasonFromDocument(doc store.Document) shared.Season {
	return shared.Season{Year: doc.ID, Name: stringValue(doc.Get("name"))}
}

// paramFields are the stored keys ParamItem maps to its own fields
var paramFields = map[string]bool{"name": true, "type": true, "description": true, "options": true, "points": true}

// paramToDocument writes Extra back first so the known fields always win
func paramToDocument(p shared.ParamItem) map[string]interface{} {
	doc := make(map[string]interface{}, len(p.Extra)+len(paramFields))
	for k, v := range p.Extra {
		if !paramFields[k] {
			doc[k] = v
		}
	}
	doc["name"] = p.Name
	doc["type"] = string(p.Type)
	doc["description"] = p.Description
	doc["options"] = toInterfaceSlice(p.Options)
	doc["points"] = p.Points
	return doc
}

// paramsFromDocument turns the fields of a mode document into params sorted by name. The field key is
// authoritative for Name; nil and non-object fields are skipped. Unknown keys are kept in Extra.
func paramsFromDocument(doc store.Document) []shared.ParamItem {
	params := make([]shared.ParamItem, 0, len(doc.Data))
	for key, value := range doc.Data {
		fields, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		param := shared.ParamItem{
			Name:        key,
			Type:        shared.ParamType(stringValue(fields["type"])),
			Description: stringValue(fields["description"]),
			Options:     stringSlice(fields["options"]),
			Points:      floatValue(fields["points"]),
		}
		for k, v := range fields {
			if paramFields[k] {
				continue
			}
			if param.Extra == nil {
				param.Extra = make(map[string]interface{})
			}
			param.Extra[k] = v
		}
		params = append(params, param)
	}
	sort.Slice(params, func(i, j int) bool {
		return params[i].Name < params[j].Name
	})
	return params
}

// userToDocument leaves out the username, the document id carries it
func userToDocument(u shared.User) map[string]interface{} {
	tags := make([]interface{}, len(u.Tags))
	for i, tag := range u.Tags {
		tags[i] = string(tag)
	}
	return map[string]interface{}{
		"password":   u.Password,
		"teamNumber": u.TeamNumber,
		"teamName":   u.TeamName,
		"tags":       tags,
	}
}

func userFromDocument(doc store.Document) shared.User {
	var tags []shared.UserTag
	for _, tag := range stringSlice(doc.Get("tags")) {
		tags = append(tags, shared.UserTag(tag))
	}
	return shared.User{
		Username:   doc.ID,
		Password:   stringValue(doc.Get("password")),
		TeamNumber: stringValue(doc.Get("teamNumber")),
		TeamName:   stringValue(doc.Get("teamName")),
		Tags:       tags,
	}
}

func scouterFromDocument(doc store.Document) shared.Scouter {
	return shared.Scouter{
		Key:       doc.ID,
		FirstName: stringValue(doc.Get("firstname")),
		LastName:  stringValue(doc.Get("lastname")),
	}
}

// scouterFromSlot reads a qual slot stored as [key, firstname, lastname]
func scouterFromSlot(v interface{}) shared.Scouter {
	fields := stringSlice(v)
	get := func(i int) string {
		if i < len(fields) && fields[i] != "" {
			return fields[i]
		}
		return missingScouterField
	}
	return shared.Scouter{Key: get(0), FirstName: get(1), LastName: get(2)}
}

func qualFromDocument(doc store.Document) shared.Qual {
	scouters := make([]shared.Scouter, 0, shared.ScoutersPerQual)
	for i := 0; i < shared.ScoutersPerQual; i++ {
		scouters = append(scouters, scouterFromSlot(doc.Get(strconv.Itoa(i))))
	}
	return shared.Qual{Qual: doc.ID, Scouters: scouters}
}
