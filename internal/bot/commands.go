package bot

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"

	"github.com/bwmarrin/discordgo"
	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/image"
	"github.com/stridebot/stridebot/internal/lang"
	"github.com/stridebot/stridebot/internal/logger"
)

const (
	commandPing          = "ping"
	commandObjectif      = "objectif"
	commandSaisir        = "saisir"
	commandResumeSemaine = "resume-semaine"
	commandResumeMois    = "resume-mois"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandPing,
			Description: lang.Ping.Description,
		},
		{
			Name:        commandObjectif,
			Description: lang.Objectif.Description,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "utilisateur",
					Description: lang.Objectif.UserOptionDesc,
				},
			},
		},
		{
			Name:        commandSaisir,
			Description: lang.Saisir.Description,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "jour",
					Description: lang.Saisir.DayOptionDesc,
				},
			},
		},
		{
			Name:        commandResumeSemaine,
			Description: lang.Resume.WeekDescription,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "lundi",
					Description: lang.Resume.MondayOptionDesc,
				},
			},
		},
		{
			Name:        commandResumeMois,
			Description: lang.Resume.MonthDescription,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mois",
					Description: lang.Resume.MonthOptionDesc,
				},
			},
		},
	}
}

func (b *Bot) handlePing(i *discordgo.InteractionCreate) error {
	return b.reply(i, lang.Ping.Reply)
}

// handleObjectif either shows another member's goals or opens the goal
// modal for the caller.
func (b *Bot) handleObjectif(ctx context.Context, i *discordgo.InteractionCreate) error {
	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		target := options[0].UserValue(b.session)
		goals, err := b.goals.GetGoals(ctx, target.ID)
		if err != nil {
			return err
		}
		return b.reply(i, lang.ObjectifOf(target.ID, goals.Daily, goals.Weekly))
	}
	return b.showObjectifModal(ctx, i)
}

func (b *Bot) handleResumeSemaine(ctx context.Context, i *discordgo.InteractionCreate) error {
	monday := dateutil.Now().StartOfWeek()
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		parsed, ok := dateutil.Parse(opts[0].StringValue())
		if !ok {
			return b.replyEphemeral(i, lang.Resume.InvalidMonday)
		}
		monday = parsed.StartOfWeek()
	}

	user := interactionUser(i)
	card, err := b.summaries.WeeklyCard(ctx, user.ID, monday)
	if err != nil {
		return err
	}
	card.Avatar = b.avatarOf(ctx, user)
	png, err := image.RenderWeeklyCard(*card)
	if err != nil {
		return err
	}
	return b.replyWithFiles(i, lang.WeeklySummaryMessage(user.ID, monday), []*discordgo.File{
		pngFile(fmt.Sprintf("weekly-%s-%s.png", user.ID, monday), png),
	})
}

func (b *Bot) handleResumeMois(ctx context.Context, i *discordgo.InteractionCreate) error {
	date := dateutil.Now()
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		parsed, ok := dateutil.Parse(opts[0].StringValue())
		if !ok {
			return b.replyEphemeral(i, lang.Resume.InvalidMonth)
		}
		date = parsed
	}
	firstDay := date.FirstDayOfMonth()

	user := interactionUser(i)
	card, err := b.summaries.MonthlyCard(ctx, user.ID, date)
	if err != nil {
		return err
	}
	card.Avatar = b.avatarOf(ctx, user)
	png, err := image.RenderMonthlyCard(*card)
	if err != nil {
		return err
	}
	return b.replyWithFiles(i, lang.MonthlySummaryMessage(user.ID, firstDay), []*discordgo.File{
		pngFile(fmt.Sprintf("monthly-%s-%s.png", user.ID, firstDay), png),
	})
}

// avatarOf fetches a member's avatar, logging and returning nil on failure:
// a summary card without an avatar beats no summary at all.
func (b *Bot) avatarOf(ctx context.Context, user *discordgo.User) stdimage.Image {
	img, err := image.FetchAvatar(ctx, user.AvatarURL("512"))
	if err != nil {
		logger.Warn("Failed to fetch avatar", "user", user.ID, "error", err)
		return nil
	}
	return img
}

func pngFile(name string, data []byte) *discordgo.File {
	return &discordgo.File{
		Name:        name,
		ContentType: "image/png",
		Reader:      bytes.NewReader(data),
	}
}
