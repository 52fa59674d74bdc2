/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session
 * Authors: scouting-admin contributors
 */

package bot

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"scouting-admin/api/api"
	"scouting-admin/config"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botUserID = "bot123"

// createTestBot creates a Bot over a fresh MockStore
func createTestBot(t *testing.T) (*Bot, *api.MockStore) {
	t.Helper()
	apiPtr, mock := api.NewTestAPI()
	bot, err := NewBot("test_token", apiPtr, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return bot, mock
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

// run sends one command through the router as a fresh author so throttling never interferes
func run(bot *Bot, session *MockDiscordSession, content string) MockMessage {
	session.ClearMessages()
	bot.newMessageHandler(session, createMockMessage(content, "user-"+content, "TestUser", "channel123"), botUserID)
	return session.GetLastMessage()
}

// region Routing tests

func TestNewMessageHandler_IgnoresSelf(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, createMockMessage("$help", botUserID, "Bot", "channel123"), botUserID)

	assert.Empty(t, session.SentMessages)
}

func TestNewMessageHandler_IgnoresOtherChannels(t *testing.T) {
	bot, _ := createTestBot(t)
	bot.ChannelID = "admin-channel"
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, createMockMessage("$help", "user1", "TestUser", "channel123"), botUserID)
	assert.Empty(t, session.SentMessages)

	bot.newMessageHandler(session, createMockMessage("$help", "user1", "TestUser", "admin-channel"), botUserID)
	assert.Len(t, session.SentMessages, 1)
}

func TestNewMessageHandler_IgnoresNonCommands(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	bot.newMessageHandler(session, createMockMessage("hello there", "user1", "TestUser", "channel123"), botUserID)
	bot.newMessageHandler(session, createMockMessage("$unknown", "user1", "TestUser", "channel123"), botUserID)

	assert.Empty(t, session.SentMessages)
}

func TestNewMessageHandler_CommandIsCaseInsensitive(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, "$HELP")

	assert.Contains(t, msg.Content, "Scouting Admin Bot")
}

func TestNewMessageHandler_Throttled(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	for i := 0; i <= commandBurst; i++ {
		bot.newMessageHandler(session, createMockMessage("$seasons", "user1", "TestUser", "channel123"), botUserID)
	}

	assert.Contains(t, session.GetLastMessage().Content, "slow down")
}

func TestNewMessageHandler_BadQuotes(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, `$newseason 2024 "Rebuilt`)

	assert.Contains(t, msg.Content, "check the quotes")
}

func TestHelpMessage_ListsCommands(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, "$help")

	assert.Equal(t, "channel123", msg.ChannelID)
	for _, cmd := range []string{"$seasons", "$newseason", "$params", "$setparam", "$users", "$adduser", "$deluser", "$teams"} {
		assert.Contains(t, msg.Content, cmd)
	}
}

// endregion

// region Season command tests

func TestSeasons_Empty(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, "$seasons")

	assert.Equal(t, "No seasons have been created", msg.Content)
}

func TestNewSeason_ThenList(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, `$newseason 2024 "Rebuilt Season"`)
	assert.Equal(t, "Season 2024 (Rebuilt Season) created", msg.Content)

	msg = run(bot, session, "$seasons")
	assert.Contains(t, msg.Content, "- 2024: Rebuilt Season")
}

func TestNewSeason_Usage(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, "$newseason 2024")

	assert.True(t, strings.HasPrefix(msg.Content, "Usage:"))
}

func TestNewSeason_MissingAdminDefaults(t *testing.T) {
	bot, mock := createTestBot(t)
	bot.APIPtr.Admin = config.AdminDefaults{}
	session := NewMockDiscordSession()

	msg := run(bot, session, "$newseason 2024 Rebuilt")

	assert.Contains(t, msg.Content, "DEFAULT_ADMIN_USERNAME")
	assert.Empty(t, mock.CallLog())
}

func TestNewSeason_PartialFailure(t *testing.T) {
	bot, mock := createTestBot(t)
	mock.FailPaths["seasons/2024/scouting-teams/1234"] = errors.New("boom")
	session := NewMockDiscordSession()

	msg := run(bot, session, "$newseason 2024 Rebuilt")

	assert.Equal(t, "Season 2024 was only partially created (failed at scouting-team)", msg.Content)
}

func TestSeasons_StoreError(t *testing.T) {
	bot, mock := createTestBot(t)
	mock.ListError = errors.New("boom")
	session := NewMockDiscordSession()

	msg := run(bot, session, "$seasons")

	assert.Equal(t, "An error occurred trying to list seasons", msg.Content)
}

// endregion

// region Param command tests

func TestParams_AllModesAfterNewSeason(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()
	run(bot, session, "$newseason 2024 Rebuilt")

	msg := run(bot, session, "$params 2024")

	assert.Contains(t, msg.Content, "Params for 2024:")
	autoIdx := strings.Index(msg.Content, "AUTONOMOUS")
	summaryIdx := strings.Index(msg.Content, "SUMMARY")
	assert.True(t, autoIdx >= 0 && summaryIdx > autoIdx)
	assert.Equal(t, 4, strings.Count(msg.Content, "- none"))
}

func TestSetParam_ThenReadOneMode(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()
	run(bot, session, "$newseason 2024 Rebuilt")

	msg := run(bot, session, `$setparam 2024 tele "Speaker Notes" counter 2 "Notes in the speaker"`)
	assert.Equal(t, "Param Speaker Notes set for 2024 TELEOP", msg.Content)

	msg = run(bot, session, "$params 2024 teleop")
	assert.Contains(t, msg.Content, "- Speaker Notes (counter, 2 pts): Notes in the speaker")
	assert.NotContains(t, msg.Content, "AUTONOMOUS")
}

func TestSetParam_ChoiceOptions(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()
	run(bot, session, "$newseason 2024 Rebuilt")

	run(bot, session, `$setparam 2024 endgame Climb choice 3 "End position" none park onstage`)
	msg := run(bot, session, "$params 2024 endgame")

	assert.Contains(t, msg.Content, "- Climb (choice, 3 pts) [none, park, onstage]: End position")
}

func TestSetParam_Errors(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"too few args", "$setparam 2024 teleop Speaker", "Usage:"},
		{"bad points", "$setparam 2024 teleop Speaker counter lots", "Usage:"},
		{"unknown mode", "$setparam 2024 overtime Speaker counter", "unknown data params mode"},
		{"bad type", "$setparam 2024 teleop Speaker slider", "invalid param"},
		{"missing season", "$setparam 1999 teleop Speaker counter", "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := run(bot, session, tt.content)
			assert.Contains(t, msg.Content, tt.contains)
		})
	}
}

// endregion

// region User command tests

func TestUsers_AddListDelete(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, `$adduser 2024 ada secret 42 "The Engines" scouter`)
	assert.Equal(t, "User ada created for 2024", msg.Content)

	msg = run(bot, session, "$users 2024")
	assert.Contains(t, msg.Content, "- ada: team 42 (The Engines) [SCOUTER]")
	assert.NotContains(t, msg.Content, "secret")

	msg = run(bot, session, "$teams 2024")
	assert.Contains(t, msg.Content, "- 42: The Engines")

	msg = run(bot, session, "$deluser 2024 ada")
	assert.Equal(t, "User ada deleted from 2024", msg.Content)

	msg = run(bot, session, "$users 2024")
	assert.Equal(t, "No users for 2024", msg.Content)
}

func TestAddUser_UnknownTag(t *testing.T) {
	bot, mock := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, `$adduser 2024 ada secret 42 "The Engines" owner`)

	assert.Contains(t, msg.Content, `Unknown tag "owner"`)
	assert.Empty(t, mock.CallLog())
}

func TestDeleteUser_Ghost(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, "$deluser 2024 ghost")

	assert.Equal(t, "User ghost deleted from 2024", msg.Content)
}

func TestTeams_Empty(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()

	msg := run(bot, session, "$teams 2024")

	assert.Equal(t, "No scouting teams for 2024", msg.Content)
}

func TestSend_ErrorIsLoggedNotPanicking(t *testing.T) {
	bot, _ := createTestBot(t)
	session := NewMockDiscordSession()
	session.ErrorToReturn = errors.New("discord down")

	assert.NotPanics(t, func() {
		bot.newMessageHandler(session, createMockMessage("$help", "user1", "TestUser", "channel123"), botUserID)
	})
	assert.Empty(t, session.SentMessages)
}

// endregion
