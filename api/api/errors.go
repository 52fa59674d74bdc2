/* errors.go
 * Contains the sentinel errors returned by the API and the SeasonBootstrapError type
 * Authors: scouting-admin contributors
 */

package api

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSeason        = errors.New("invalid season")
	ErrInvalidParam         = errors.New("invalid param")
	ErrInvalidUser          = errors.New("invalid user")
	ErrMissingAdminDefaults = errors.New("default admin identity is not configured")
)

// SeasonBootstrapError reports that CreateSeason stopped part way. Steps before Step were written and are not
// rolled back, so the season exists but is only partially initialised.
type SeasonBootstrapError struct {
	Year string
	Step string
	Err  error
}

func (e *SeasonBootstrapError) Error() string {
	return fmt.Sprintf("season %s partially created, step %q failed: %v", e.Year, e.Step, e.Err)
}

func (e *SeasonBootstrapError) Unwrap() error {
	return e.Err
}
