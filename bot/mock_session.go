/* mock_session.go
 * Contains MockDiscordSession, a DiscordSession that records sent messages for tests
 * Authors: scouting-admin contributors
 */

package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession implements DiscordSession for testing purposes
type MockDiscordSession struct {
	SentMessages []MockMessage
	// ErrorToReturn makes every send fail
	ErrorToReturn error
}

// MockMessage represents a message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		SentMessages: make([]MockMessage, 0),
	}
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.SentMessages = append(m.SentMessages, MockMessage{
		ChannelID: channelID,
		Content:   content,
	})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

// GetLastMessage returns the last message sent, or empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// AllContent joins every sent message, for assertions on replies split over several messages
func (m *MockDiscordSession) AllContent() string {
	parts := make([]string, 0, len(m.SentMessages))
	for _, msg := range m.SentMessages {
		parts = append(parts, msg.Content)
	}
	return strings.Join(parts, "")
}

// ClearMessages clears all stored messages
func (m *MockDiscordSession) ClearMessages() {
	m.SentMessages = nil
}
