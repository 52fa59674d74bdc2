/* templates.go
 * Contains the YAML loader for param templates, the list of params per mode an admin can import into a season
 * Authors: scouting-admin contributors
 */

package config

import (
	"fmt"
	"os"

	"scouting-admin/api/shared"

	"gopkg.in/yaml.v3"
)

// ParamTemplates holds the params to import for each mode
type ParamTemplates map[shared.DataParamsMode][]shared.ParamItem

// Count returns the number of params across all modes
func (p ParamTemplates) Count() int {
	n := 0
	for _, items := range p {
		n += len(items)
	}
	return n
}

// LoadParamTemplates reads a template file
// Preconditions: Receives the path to a YAML file keyed by mode, e.g. `teleop: [{name: Speaker, type: counter}]`
// Postconditions: Returns the templates, or an error if the file cannot be read or parsed
func LoadParamTemplates(path string) (ParamTemplates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read param templates: %w", err)
	}
	return ParseParamTemplates(data)
}

// ParseParamTemplates parses YAML template data. Mode keys are matched with shared.ParseMode so both
// `teleop` and `TELEOP` are accepted, anything else is an error.
func ParseParamTemplates(data []byte) (ParamTemplates, error) {
	var raw map[string][]shared.ParamItem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse param templates: %w", err)
	}

	templates := make(ParamTemplates, len(raw))
	for key, items := range raw {
		mode, err := shared.ParseMode(key)
		if err != nil {
			return nil, fmt.Errorf("param templates: %w", err)
		}
		templates[mode] = append(templates[mode], items...)
	}
	return templates, nil
}
