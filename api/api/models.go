/* models.go
 * This file contain the structs returned to api consumers that are not stored records themselves
 * Authors: scouting-admin contributors
 */

package api

import "scouting-admin/api/shared"

// ModeParams pairs a mode with its params
type ModeParams struct {
	Mode   shared.DataParamsMode `json:"mode"`
	Params []shared.ParamItem    `json:"params"`
}
