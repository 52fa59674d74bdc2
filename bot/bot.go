/* bot.go
 * Contains the Bot type and the helpers shared by the command handlers: argument splitting, mode resolution and
 * per author throttling. Requires a discord bot token and an API pointer, both passed in from main.go
 * Authors: scouting-admin contributors
 */

package bot

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"scouting-admin/api/api"
	"scouting-admin/api/shared"

	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/time/rate"
)

const (
	commandPrefix  = "$"
	handlerTimeout = 10 * time.Second
	// Each author gets a burst of commandBurst commands, refilled at one every commandInterval
	commandBurst    = 3
	commandInterval = 2 * time.Second
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
	// ChannelID restricts the bot to one channel when set
	ChannelID string
	Logger    *slog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewBot creates a new Bot
// Preconditions: Receives a bot token, API pointer, optional channel id and optional logger
// Postconditions: Returns the Bot, or an error if the token or API is missing
func NewBot(botToken string, apiPtr *api.API, channelID string, logger *slog.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("api is required but none was provided")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		BotToken:  botToken,
		APIPtr:    apiPtr,
		ChannelID: channelID,
		Logger:    logger,
		limiters:  make(map[string]*rate.Limiter),
	}, nil
}

// splitArgs splits a message on spaces, keeping double quoted parts (e.g. "Default Robotics") as one argument
func splitArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			args = append(args, unquote(part))
		}
	}
	return args, nil
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	// Discord clients on some platforms send curly quotes
	if strings.HasPrefix(s, "“") && strings.HasSuffix(s, "”") && len(s) >= len("“”") {
		return strings.TrimSuffix(strings.TrimPrefix(s, "“"), "”")
	}
	return s
}

// resolveMode matches user input against the mode names. Exact names win, otherwise the closest fuzzy match is
// taken if there is exactly one best candidate
// Preconditions: Receives the raw mode argument
// Postconditions: Returns the mode, or an error wrapping shared.ErrUnknownMode
func resolveMode(input string) (shared.DataParamsMode, error) {
	if mode, err := shared.ParseMode(input); err == nil {
		return mode, nil
	}

	targets := make([]string, 0, len(shared.AllModes()))
	for _, mode := range shared.AllModes() {
		targets = append(targets, mode.String())
	}

	ranks := fuzzy.RankFindFold(strings.TrimSpace(input), targets)
	if len(ranks) == 0 || strings.TrimSpace(input) == "" {
		return 0, fmt.Errorf("%w: %q", shared.ErrUnknownMode, input)
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return 0, fmt.Errorf("%w: %q is ambiguous", shared.ErrUnknownMode, input)
	}
	return shared.ParseMode(ranks[0].Target)
}

// allow reports whether the author may run another command now
func (b *Bot) allow(authorID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.limiters == nil {
		b.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := b.limiters[authorID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(commandInterval), commandBurst)
		b.limiters[authorID] = limiter
	}
	return limiter.Allow()
}

func (b *Bot) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}
