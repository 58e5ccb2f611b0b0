package bot

import (
	"context"
	"fmt"
	stdimage "image"

	"github.com/bwmarrin/discordgo"
	"github.com/stridebot/stridebot/internal/dateutil"
	apperrors "github.com/stridebot/stridebot/internal/errors"
	"github.com/stridebot/stridebot/internal/image"
	"github.com/stridebot/stridebot/internal/lang"
)

// The methods below are the scheduler's view of the bot (scheduler.Poster):
// everything the periodic triggers need from Discord.

// PostDailyPrompt sends the evening reminder with the entry button to the
// configured channel.
func (b *Bot) PostDailyPrompt(ctx context.Context, date dateutil.Date, userIDs []string) error {
	_, err := b.session.ChannelMessageSendComplex(b.cfg.ChannelID, &discordgo.MessageSend{
		Content: lang.DailyPromptMessage(date.ClockString(), userIDs, date),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    lang.Saisir.ButtonLabel,
						Style:    discordgo.PrimaryButton,
						CustomID: lang.Saisir.ButtonIDPrefix + date.String(),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send daily prompt: %w", err)
	}
	return nil
}

// PostSummary sends a rendered card to the configured channel.
func (b *Bot) PostSummary(ctx context.Context, content, filename string, png []byte) error {
	_, err := b.session.ChannelMessageSendComplex(b.cfg.ChannelID, &discordgo.MessageSend{
		Content: content,
		Files:   []*discordgo.File{pngFile(filename, png)},
	})
	if err != nil {
		return fmt.Errorf("failed to send summary: %w", err)
	}
	return nil
}

// AvatarImage resolves and fetches a member's avatar by id.
func (b *Bot) AvatarImage(ctx context.Context, userID string) (stdimage.Image, error) {
	user, err := b.session.User(userID)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "Discord").WithContext("user", userID)
	}
	return image.FetchAvatar(ctx, user.AvatarURL("512"))
}
