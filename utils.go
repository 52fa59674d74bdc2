/* utils.go
 * Utility functions used by main.go
 * Authors: scouting-admin contributors
 */

package main

import (
	"fmt"
	"strings"

	"scouting-admin/config"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// checkSurfaces catches settings the selected surfaces need before any connection is opened
// Preconditions: Receives loaded config and whether the bot will run
// Postconditions: Returns nil, or an error naming the missing setting
func checkSurfaces(cfg *config.Config, runBot bool) error {
	if runBot && strings.TrimSpace(cfg.DiscordToken) == "" {
		return fmt.Errorf("DISCORD_TOKEN environment variable is not set but -bot is true")
	}
	return nil
}
