/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface, one per admin command
 * Authors: scouting-admin contributors
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"scouting-admin/api/api"
	"scouting-admin/api/shared"
	"scouting-admin/api/store"

	"github.com/bwmarrin/discordgo"
)

// maxMessageLength stays under Discord's 2000 character limit
const maxMessageLength = 1900

type commandHandler func(b *Bot, ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string)

var commands = map[string]commandHandler{
	"$help":      (*Bot).helpMessageHandler,
	"$seasons":   (*Bot).seasonsHandler,
	"$newseason": (*Bot).newSeasonHandler,
	"$params":    (*Bot).paramsHandler,
	"$setparam":  (*Bot).setParamHandler,
	"$users":     (*Bot).usersHandler,
	"$adduser":   (*Bot).addUserHandler,
	"$deluser":   (*Bot).deleteUserHandler,
	"$teams":     (*Bot).teamsHandler,
}

// send posts content, splitting it on line breaks into several messages when it is too long
func (b *Bot) send(session DiscordSession, channelID string, content string) {
	for _, chunk := range chunkMessage(content, maxMessageLength) {
		if _, err := session.ChannelMessageSend(channelID, chunk); err != nil {
			b.logger().Error("failed to send discord message", "channel", channelID, "err", err)
			return
		}
	}
}

func chunkMessage(content string, limit int) []string {
	if len(content) <= limit {
		return []string{content}
	}
	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(content, "\n") {
		for len(line) > limit {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			// Cut on a rune boundary so no chunk carries half a character
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if current.Len()+len(line) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// replyError turns an API error into a message for the channel. Input problems are echoed back, anything else is
// logged and reported generically
func (b *Bot) replyError(session DiscordSession, message *discordgo.MessageCreate, action string, err error) {
	var bootstrapErr *api.SeasonBootstrapError
	switch {
	case errors.Is(err, store.ErrNotFound):
		b.send(session, message.ChannelID, fmt.Sprintf("Could not %s: not found", action))
	case errors.Is(err, store.ErrInvalidPath),
		errors.Is(err, store.ErrInvalidField),
		errors.Is(err, api.ErrInvalidSeason),
		errors.Is(err, api.ErrInvalidParam),
		errors.Is(err, api.ErrInvalidUser),
		errors.Is(err, api.ErrMissingAdminDefaults),
		errors.Is(err, shared.ErrUnknownMode):
		b.send(session, message.ChannelID, fmt.Sprintf("Could not %s: %s", action, err))
	case errors.As(err, &bootstrapErr):
		b.logger().Error("season bootstrap failed", "year", bootstrapErr.Year, "step", bootstrapErr.Step, "err", err)
		b.send(session, message.ChannelID, fmt.Sprintf("Season %s was only partially created (failed at %s)", bootstrapErr.Year, bootstrapErr.Step))
	default:
		b.logger().Error("command failed", "action", action, "author", message.Author.ID, "err", err)
		b.send(session, message.ChannelID, fmt.Sprintf("An error occurred trying to %s", action))
	}
}

func (b *Bot) usage(session DiscordSession, message *discordgo.MessageCreate, usage string) {
	b.send(session, message.ChannelID, "Usage: `"+usage+"`")
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(_ context.Context, session DiscordSession, message *discordgo.MessageCreate, _ []string) {
	var res strings.Builder
	res.WriteString("Scouting Admin Bot\n")
	res.WriteString("Arguments that contain spaces need to be wrapped in \" (e.g. \"Default Robotics\")\n")
	res.WriteString("`$seasons`: lists every season\n")
	res.WriteString("`$newseason <year> \"<name>\"`: creates a season with empty params, the default admin and their team\n")
	res.WriteString("`$params <year> [mode]`: shows the params of one mode, or of every mode\n")
	res.WriteString("`$setparam <year> <mode> \"<name>\" <type> [points] [\"description\"]`: adds or replaces a param. Types are counter, boolean, text and choice\n")
	res.WriteString("`$users <year>`: lists the users of a season\n")
	res.WriteString("`$adduser <year> <username> <password> <teamNumber> \"<teamName>\" [tags...]`: creates or replaces a user. Tags are TEAM, ADMIN and SCOUTER\n")
	res.WriteString("`$deluser <year> <username>`: deletes a user\n")
	res.WriteString("`$teams <year>`: lists the scouting teams of a season\n")
	res.WriteString("Mode names are matched loosely, e.g. `tele` for teleop\n")
	b.send(session, message.ChannelID, res.String())
}

// seasonsHandler handles the $seasons command
func (b *Bot) seasonsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, _ []string) {
	seasons, err := b.APIPtr.ListSeasons(ctx)
	if err != nil {
		b.replyError(session, message, "list seasons", err)
		return
	}
	if len(seasons) == 0 {
		b.send(session, message.ChannelID, "No seasons have been created")
		return
	}

	var res strings.Builder
	res.WriteString("Seasons:\n")
	for _, s := range seasons {
		res.WriteString(fmt.Sprintf("- %s: %s\n", s.Year, s.Name))
	}
	b.send(session, message.ChannelID, res.String())
}

// newSeasonHandler handles $newseason <year> "<name>"
func (b *Bot) newSeasonHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 3 {
		b.usage(session, message, `$newseason <year> "<name>"`)
		return
	}

	if err := b.APIPtr.CreateSeason(ctx, args[1], args[2]); err != nil {
		b.replyError(session, message, "create season "+args[1], err)
		return
	}
	b.send(session, message.ChannelID, fmt.Sprintf("Season %s (%s) created", args[1], args[2]))
}

// paramsHandler handles $params <year> [mode]
func (b *Bot) paramsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) < 2 || len(args) > 3 {
		b.usage(session, message, "$params <year> [mode]")
		return
	}
	year := args[1]

	var all []api.ModeParams
	if len(args) == 3 {
		mode, err := resolveMode(args[2])
		if err != nil {
			b.replyError(session, message, "read params", err)
			return
		}
		params, err := b.APIPtr.GetParams(ctx, mode, year)
		if err != nil {
			b.replyError(session, message, "read params", err)
			return
		}
		all = []api.ModeParams{{Mode: mode, Params: params}}
	} else {
		var err error
		all, err = b.APIPtr.GetAllParams(ctx, year)
		if err != nil {
			b.replyError(session, message, "read params", err)
			return
		}
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Params for %s:\n", year))
	for _, mp := range all {
		res.WriteString(fmt.Sprintf("**%s**\n", mp.Mode.Name()))
		if len(mp.Params) == 0 {
			res.WriteString("- none\n")
			continue
		}
		for _, p := range mp.Params {
			res.WriteString(formatParam(p))
		}
	}
	b.send(session, message.ChannelID, res.String())
}

func formatParam(p shared.ParamItem) string {
	line := fmt.Sprintf("- %s (%s", p.Name, p.Type)
	if p.Points != 0 {
		line += ", " + strconv.FormatFloat(p.Points, 'f', -1, 64) + " pts"
	}
	line += ")"
	if len(p.Options) > 0 {
		line += " [" + strings.Join(p.Options, ", ") + "]"
	}
	if p.Description != "" {
		line += ": " + p.Description
	}
	return line + "\n"
}

// setParamHandler handles $setparam <year> <mode> "<name>" <type> [points] ["description"]. For choice params the
// options follow the description, e.g. $setparam 2024 endgame Climb choice 3 "End position" none park onstage
func (b *Bot) setParamHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	const usage = `$setparam <year> <mode> "<name>" <type> [points] ["description"] [options...]`
	if len(args) < 5 {
		b.usage(session, message, usage)
		return
	}

	mode, err := resolveMode(args[2])
	if err != nil {
		b.replyError(session, message, "set param", err)
		return
	}
	param := shared.ParamItem{
		Name: args[3],
		Type: shared.ParamType(strings.ToLower(args[4])),
	}
	if len(args) > 5 {
		points, err := strconv.ParseFloat(args[5], 64)
		if err != nil {
			b.usage(session, message, usage)
			return
		}
		param.Points = points
	}
	if len(args) > 6 {
		param.Description = args[6]
	}
	if len(args) > 7 {
		param.Options = args[7:]
	}

	if err := b.APIPtr.SetParam(ctx, param, mode, args[1]); err != nil {
		b.replyError(session, message, fmt.Sprintf("set param %q", param.Name), err)
		return
	}
	b.send(session, message.ChannelID, fmt.Sprintf("Param %s set for %s %s", param.Name, args[1], mode.Name()))
}

// usersHandler handles $users <year>. Passwords are never echoed
func (b *Bot) usersHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 2 {
		b.usage(session, message, "$users <year>")
		return
	}

	users, err := b.APIPtr.ListUsers(ctx, args[1])
	if err != nil {
		b.replyError(session, message, "list users", err)
		return
	}
	if len(users) == 0 {
		b.send(session, message.ChannelID, fmt.Sprintf("No users for %s", args[1]))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Users for %s:\n", args[1]))
	for _, u := range users {
		tags := make([]string, 0, len(u.Tags))
		for _, tag := range u.Tags {
			tags = append(tags, string(tag))
		}
		res.WriteString(fmt.Sprintf("- %s: team %s (%s)", u.Username, u.TeamNumber, u.TeamName))
		if len(tags) > 0 {
			res.WriteString(" [" + strings.Join(tags, ", ") + "]")
		}
		res.WriteString("\n")
	}
	b.send(session, message.ChannelID, res.String())
}

// addUserHandler handles $adduser <year> <username> <password> <teamNumber> "<teamName>" [tags...]
func (b *Bot) addUserHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) < 6 {
		b.usage(session, message, `$adduser <year> <username> <password> <teamNumber> "<teamName>" [tags...]`)
		return
	}

	user := shared.User{
		Username:   args[2],
		Password:   args[3],
		TeamNumber: args[4],
		TeamName:   args[5],
	}
	for _, raw := range args[6:] {
		tag, ok := shared.ParseUserTag(raw)
		if !ok {
			b.send(session, message.ChannelID, fmt.Sprintf("Unknown tag %q, expected TEAM, ADMIN or SCOUTER", raw))
			return
		}
		user.Tags = append(user.Tags, tag)
	}

	if err := b.APIPtr.CreateUser(ctx, args[1], user); err != nil {
		b.replyError(session, message, "create user "+user.Username, err)
		return
	}
	b.send(session, message.ChannelID, fmt.Sprintf("User %s created for %s", user.Username, args[1]))
}

// deleteUserHandler handles $deluser <year> <username>
func (b *Bot) deleteUserHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 3 {
		b.usage(session, message, "$deluser <year> <username>")
		return
	}

	if err := b.APIPtr.DeleteUser(ctx, args[1], args[2]); err != nil {
		b.replyError(session, message, "delete user "+args[2], err)
		return
	}
	b.send(session, message.ChannelID, fmt.Sprintf("User %s deleted from %s", args[2], args[1]))
}

// teamsHandler handles $teams <year>
func (b *Bot) teamsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 2 {
		b.usage(session, message, "$teams <year>")
		return
	}

	teams, err := b.APIPtr.FieldValues(ctx, args[1], api.ScoutingTeamsCollection, "name")
	if err != nil {
		b.replyError(session, message, "list teams", err)
		return
	}
	if len(teams) == 0 {
		b.send(session, message.ChannelID, fmt.Sprintf("No scouting teams for %s", args[1]))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Scouting teams for %s:\n", args[1]))
	for _, team := range teams {
		res.WriteString(fmt.Sprintf("- %s: %s\n", team.ID, team.Value))
	}
	b.send(session, message.ChannelID, res.String())
}

// newMessageHandler routes messages to the command handlers
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID || message.Author.Bot {
		return
	}
	if b.ChannelID != "" && message.ChannelID != b.ChannelID {
		return
	}
	if !strings.HasPrefix(message.Content, commandPrefix) {
		return
	}

	args, err := splitArgs(message.Content)
	if err != nil || len(args) == 0 {
		b.send(session, message.ChannelID, "Could not read that command, check the quotes")
		return
	}
	handler, ok := commands[strings.ToLower(args[0])]
	if !ok {
		return
	}

	if !b.allow(message.Author.ID) {
		b.send(session, message.ChannelID, fmt.Sprintf("%s, slow down a little", message.Author.Username))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	b.logger().Debug("running command", "command", args[0], "author", message.Author.ID)
	handler(b, ctx, session, message, args)
}
