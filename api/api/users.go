/* users.go
 * Contains the user and scouting team operations for a season
 * Authors: scouting-admin contributors
 */

package api

import (
	"context"
	"fmt"
	"strings"

	"scouting-admin/api/shared"
)

// ListUsers gets every user of a season. Username comes from the document id, not from any stored field
// Preconditions: Receives context and season year
// Postconditions: Returns users ordered by username, or an error if it occurs
func (a *API) ListUsers(ctx context.Context, year string) ([]shared.User, error) {
	path, err := seasonCollectionPath(year, UsersCollection)
	if err != nil {
		return nil, err
	}

	docs, err := a.Store.List(ctx, path)
	if err != nil {
		return nil, err
	}

	users := make([]shared.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, userFromDocument(doc))
	}
	return users, nil
}

// ListUsernames returns the usernames of ListUsers
func (a *API) ListUsernames(ctx context.Context, year string) ([]string, error) {
	users, err := a.ListUsers(ctx, year)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names, nil
}

// CreateUser writes the user, replacing any existing user with the same username, then creates the user's
// scouting team if the season does not have it yet. An existing team keeps its name.
// Preconditions: Receives context, season year and user with Username and TeamNumber set
// Postconditions: Returns nil once both writes are done, or an error if it occurs
func (a *API) CreateUser(ctx context.Context, year string, user shared.User) error {
	user, err := validateUser(user)
	if err != nil {
		return err
	}
	path, err := seasonDocPath(year, UsersCollection, user.Username)
	if err != nil {
		return err
	}
	teamPath, err := seasonDocPath(year, ScoutingTeamsCollection, user.TeamNumber)
	if err != nil {
		return err
	}

	if err := a.Store.Set(ctx, path, userToDocument(user)); err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}

	teams, err := a.ListScoutingTeams(ctx, year)
	if err != nil {
		return fmt.Errorf("user %s created but scouting teams could not be read: %w", user.Username, err)
	}
	if _, ok := teams[user.TeamNumber]; ok {
		return nil
	}

	a.Logger.Info("creating scouting team", "year", year, "team", user.TeamNumber, "name", user.TeamName)
	if err := a.Store.Set(ctx, teamPath, map[string]interface{}{"name": user.TeamName}); err != nil {
		return fmt.Errorf("user %s created but scouting team %s was not: %w", user.Username, user.TeamNumber, err)
	}
	return nil
}

// UpdateUser merges the user's fields into the existing user document
// Preconditions: Receives context, season year and user
// Postconditions: Returns nil once merged, an error wrapping store.ErrNotFound if the user does not exist, or
// another error if it occurs
func (a *API) UpdateUser(ctx context.Context, year string, user shared.User) error {
	user, err := validateUser(user)
	if err != nil {
		return err
	}
	path, err := seasonDocPath(year, UsersCollection, user.Username)
	if err != nil {
		return err
	}

	if err := a.Store.Update(ctx, path, userToDocument(user)); err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.Username, err)
	}
	return nil
}

// DeleteUser removes a user. Deleting a user that does not exist succeeds.
func (a *API) DeleteUser(ctx context.Context, year string, username string) error {
	path, err := seasonDocPath(year, UsersCollection, username)
	if err != nil {
		return err
	}
	if err := a.Store.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}
	return nil
}

// ListScoutingTeams gets the scouting teams of a season as team number -> team name
func (a *API) ListScoutingTeams(ctx context.Context, year string) (map[string]string, error) {
	path, err := seasonCollectionPath(year, ScoutingTeamsCollection)
	if err != nil {
		return nil, err
	}

	docs, err := a.Store.List(ctx, path)
	if err != nil {
		return nil, err
	}

	teams := make(map[string]string, len(docs))
	for _, doc := range docs {
		teams[doc.ID] = stringValue(doc.Get("name"))
	}
	return teams, nil
}

// validateUser returns the user with its tags in canonical form, or ErrInvalidUser
func validateUser(u shared.User) (shared.User, error) {
	if strings.TrimSpace(u.Username) == "" {
		return u, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if strings.TrimSpace(u.TeamNumber) == "" {
		return u, fmt.Errorf("%w: team number is required", ErrInvalidUser)
	}
	if len(u.Tags) == 0 {
		return u, nil
	}
	tags := make([]shared.UserTag, 0, len(u.Tags))
	for _, t := range u.Tags {
		tag, ok := shared.ParseUserTag(string(t))
		if !ok {
			return u, fmt.Errorf("%w: unknown tag %q", ErrInvalidUser, t)
		}
		tags = append(tags, tag)
	}
	u.Tags = tags
	return u, nil
}
