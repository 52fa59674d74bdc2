/* models.go
 * Contains the domain records shared by the store, api, web and bot packages: seasons, data-param modes,
 * param items, users, scouting teams, scouters and quals
 * Authors: scouting-admin contributors
 */

package shared

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("unknown data params mode")

// DataParamsMode is one of the fixed match phases a season configures params for.
// The String value is the document id used under seasons/<year>/data-params.
type DataParamsMode int

const (
	Autonomous DataParamsMode = iota
	Teleop
	Endgame
	Summary
)

var modeSegments = [...]string{
	Autonomous: "autonomous",
	Teleop:     "teleop",
	Endgame:    "endgame",
	Summary:    "summary",
}

var modeNames = [...]string{
	Autonomous: "AUTONOMOUS",
	Teleop:     "TELEOP",
	Endgame:    "ENDGAME",
	Summary:    "SUMMARY",
}

// AllModes returns every mode in the order params are reported in.
func AllModes() []DataParamsMode {
	return []DataParamsMode{Autonomous, Teleop, Endgame, Summary}
}

// String returns the path segment for the mode
func (m DataParamsMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("DataParamsMode(%d)", int(m))
	}
	return modeSegments[m]
}

// Name returns the upper case constant name, e.g. AUTONOMOUS
func (m DataParamsMode) Name() string {
	if !m.Valid() {
		return m.String()
	}
	return modeNames[m]
}

func (m DataParamsMode) Valid() bool {
	return m >= Autonomous && m <= Summary
}

// ParseMode converts either the path segment ("teleop") or the constant name ("TELEOP") into a mode.
// Preconditions: Receives a string, surrounding whitespace and case are ignored
// Postconditions: Returns the matching mode, or ErrUnknownMode
func ParseMode(s string) (DataParamsMode, error) {
	s = strings.TrimSpace(s)
	for _, m := range AllModes() {
		if strings.EqualFold(s, modeSegments[m]) || strings.EqualFold(s, modeNames[m]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText lets modes be used as JSON/YAML keys and values
func (m DataParamsMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *DataParamsMode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Season is identified by its year, which is also the document id
type Season struct {
	Year string `json:"year"`
	Name string `json:"name"`
}

// ParamType describes how a scouter records a param
type ParamType string

const (
	ParamCounter ParamType = "counter"
	ParamBoolean ParamType = "boolean"
	ParamText    ParamType = "text"
	ParamChoice  ParamType = "choice"
)

func (t ParamType) Valid() bool {
	switch t {
	case ParamCounter, ParamBoolean, ParamText, ParamChoice:
		return true
	}
	return false
}

// ParamItem is one configurable data point. It is stored as a field of the mode document keyed by Name.
// Extra holds any stored fields other clients wrote that have no field here, so they survive a read and write back.
type ParamItem struct {
	Name        string                 `json:"name" yaml:"name"`
	Type        ParamType              `json:"type" yaml:"type"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Options     []string               `json:"options,omitempty" yaml:"options,omitempty"`
	Points      float64                `json:"points,omitempty" yaml:"points,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// UserTag is a role attached to a user
type UserTag string

const (
	TagTeam    UserTag = "TEAM"
	TagAdmin   UserTag = "ADMIN"
	TagScouter UserTag = "SCOUTER"
)

// ParseUserTag matches a tag case-insensitively
func ParseUserTag(s string) (UserTag, bool) {
	for _, tag := range []UserTag{TagTeam, TagAdmin, TagScouter} {
		if strings.EqualFold(strings.TrimSpace(s), string(tag)) {
			return tag, true
		}
	}
	return "", false
}

// User belongs to a single season. Username is the document id.
type User struct {
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	TeamNumber string    `json:"teamNumber"`
	TeamName   string    `json:"teamName"`
	Tags       []UserTag `json:"tags"`
}

// HasTag reports whether the user carries tag
func (u User) HasTag(tag UserTag) bool {
	for _, t := range u.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoutingTeam is keyed by team number within a season
type ScoutingTeam struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

type Scouter struct {
	Key       string `json:"key"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// ScoutersPerQual is the number of scouter slots in a qual assignment
const ScoutersPerQual = 6

// Qual holds the scouters assigned to one qualification match
type Qual struct {
	Qual     string    `json:"qual"`
	Scouters []Scouter `json:"scouters"`
}

// FieldValue is a document id paired with one of its fields
type FieldValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}
