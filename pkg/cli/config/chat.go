package config

import (
	"log/slog"

	"github.com/atelier-vert/rapport/pkg/service/chat"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Chat holds CLI flags for the chat backend client
type Chat struct {
	botToken string
}

// Flags returns CLI flags for chat configuration
func (c *Chat) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for reading channel history and files)",
			Category:    "Slack",
			Required:    true,
			Sources:     cli.EnvVars("RAPPORT_SLACK_BOT_TOKEN"),
			Destination: &c.botToken,
		},
	}
}

func (c Chat) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(c.botToken)),
	)
}

// BotToken returns the configured bot token
func (c *Chat) BotToken() string {
	return c.botToken
}

// Configure creates a chat client from the configured token
func (c *Chat) Configure() (*chat.Client, error) {
	client, err := chat.New(c.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create chat client")
	}
	return client, nil
}
