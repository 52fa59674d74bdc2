/* admin.go
 * Contains the default admin identity every new season is bootstrapped with
 * Authors: scouting-admin contributors
 */

package config

// Environment variables holding the default admin identity
const (
	EnvAdminUsername   = "DEFAULT_ADMIN_USERNAME"
	EnvAdminPassword   = "DEFAULT_ADMIN_PASSWORD"
	EnvAdminTeamNumber = "DEFAULT_ADMIN_TEAM_NUMBER"
	EnvAdminTeamName   = "DEFAULT_ADMIN_TEAM_NAME"
)

type AdminDefaults struct {
	Username   string
	Password   string
	TeamNumber string
	TeamName   string
}

func AdminDefaultsFromEnv() AdminDefaults {
	return AdminDefaults{
		Username:   envOrDefault(EnvAdminUsername, ""),
		Password:   envOrDefault(EnvAdminPassword, ""),
		TeamNumber: envOrDefault(EnvAdminTeamNumber, ""),
		TeamName:   envOrDefault(EnvAdminTeamName, ""),
	}
}

// Missing returns the environment variable names of every unset value, in a fixed order
func (a AdminDefaults) Missing() []string {
	var missing []string
	if a.Username == "" {
		missing = append(missing, EnvAdminUsername)
	}
	if a.Password == "" {
		missing = append(missing, EnvAdminPassword)
	}
	if a.TeamNumber == "" {
		missing = append(missing, EnvAdminTeamNumber)
	}
	if a.TeamName == "" {
		missing = append(missing, EnvAdminTeamName)
	}
	return missing
}
