// Package bot wires the Discord side: slash commands, modal forms, the
// reminder button and message/file sends. All domain logic lives in the
// services; handlers only validate input, call a service and shape the
// reply.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/stridebot/stridebot/internal/config"
	apperrors "github.com/stridebot/stridebot/internal/errors"
	"github.com/stridebot/stridebot/internal/lang"
	"github.com/stridebot/stridebot/internal/logger"
	"github.com/stridebot/stridebot/internal/services"
)

type Bot struct {
	session   *discordgo.Session
	cfg       config.DiscordConfig
	goals     *services.GoalService
	entries   *services.EntryService
	summaries *services.SummaryService
	errs      *apperrors.Handler
}

func NewBot(cfg config.DiscordConfig, goals *services.GoalService, entries *services.EntryService, summaries *services.SummaryService) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	b := &Bot{
		session:   session,
		cfg:       cfg,
		goals:     goals,
		entries:   entries,
		summaries: summaries,
		errs:      apperrors.NewHandler(logger.GetLogger()),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Start opens the gateway connection and blocks until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	<-ctx.Done()
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Info("Discord bot is ready", "user", r.User.Username)
	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.cfg.GuildID, commandDefinitions()); err != nil {
		logger.Error("Failed to register commands", "error", err)
		return
	}
	logger.Info("Slash commands registered", "guild", b.cfg.GuildID)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	var err error

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case commandPing:
			err = b.handlePing(i)
		case commandObjectif:
			err = b.handleObjectif(ctx, i)
		case commandSaisir:
			err = b.handleSaisir(ctx, i)
		case commandResumeSemaine:
			err = b.handleResumeSemaine(ctx, i)
		case commandResumeMois:
			err = b.handleResumeMois(ctx, i)
		}
	case discordgo.InteractionMessageComponent:
		if strings.HasPrefix(i.MessageComponentData().CustomID, lang.Saisir.ButtonIDPrefix) {
			err = b.handleSaisirButton(ctx, i)
		}
	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		switch {
		case customID == objectifModalID:
			err = b.handleObjectifSubmit(ctx, i)
		case strings.HasPrefix(customID, lang.Saisir.ModalIDPrefix):
			err = b.handleSaisirSubmit(ctx, i)
		}
	}

	if err != nil {
		b.errs.Handle(ctx, err)
	}
}

// interactionUser returns the acting user for both guild and DM contexts.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func (b *Bot) reply(i *discordgo.InteractionCreate, content string) error {
	return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func (b *Bot) replyEphemeral(i *discordgo.InteractionCreate, content string) error {
	return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) replyWithFiles(i *discordgo.InteractionCreate, content string, files []*discordgo.File) error {
	return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Files: files},
	})
}
