package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/image"
	"github.com/stridebot/stridebot/internal/lang"
	"github.com/stridebot/stridebot/internal/services"
)

const (
	objectifModalID = "objectif-modal"
	inputDailyGoal  = "objectif-jour"
	inputWeeklyGoal = "objectif-semaine"
	inputSteps      = "pas"
)

func textInput(customID, label, placeholder, value string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    customID,
				Label:       label,
				Placeholder: placeholder,
				Value:       value,
				Style:       discordgo.TextInputShort,
				Required:    false,
			},
		},
	}
}

// submittedValue digs a text-input value out of a modal submission.
func submittedValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customID {
				return strings.TrimSpace(input.Value)
			}
		}
	}
	return ""
}

// parseOptionalCount parses a goal/steps field: empty means "clear", and a
// value must be a non-negative integer.
func parseOptionalCount(raw string) (value *int, ok bool) {
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

func formatOptional(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func (b *Bot) showModal(i *discordgo.InteractionCreate, customID, title string, rows ...discordgo.MessageComponent) error {
	return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: rows,
		},
	})
}

func (b *Bot) showObjectifModal(ctx context.Context, i *discordgo.InteractionCreate) error {
	user := interactionUser(i)
	goals, err := b.goals.GetGoals(ctx, user.ID)
	if err != nil {
		return err
	}
	return b.showModal(i, objectifModalID, lang.Objectif.ModalTitle,
		textInput(inputDailyGoal, lang.Objectif.DailyLabel, lang.Objectif.DailyPlaceholder, formatOptional(goals.Daily)),
		textInput(inputWeeklyGoal, lang.Objectif.WeeklyLabel, lang.Objectif.WeeklyPlaceholder, formatOptional(goals.Weekly)),
	)
}

func (b *Bot) handleObjectifSubmit(ctx context.Context, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	user := interactionUser(i)

	daily, ok := parseOptionalCount(submittedValue(data, inputDailyGoal))
	if !ok {
		return b.replyEphemeral(i, lang.Objectif.InvalidValue)
	}
	weekly, ok := parseOptionalCount(submittedValue(data, inputWeeklyGoal))
	if !ok {
		return b.replyEphemeral(i, lang.Objectif.InvalidValue)
	}

	if err := b.goals.SetGoals(ctx, user.ID, services.Goals{Daily: daily, Weekly: weekly}); err != nil {
		return err
	}
	if daily == nil && weekly == nil {
		return b.reply(i, lang.ObjectifCleared(user.ID))
	}
	return b.reply(i, lang.ObjectifSet(user.ID, daily, weekly))
}

func (b *Bot) handleSaisir(ctx context.Context, i *discordgo.InteractionCreate) error {
	date := dateutil.Now()
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		parsed, ok := dateutil.Parse(opts[0].StringValue())
		if !ok {
			return b.replyEphemeral(i, lang.Saisir.InvalidDate)
		}
		date = parsed
	}
	return b.showSaisirModal(ctx, i, date)
}

// handleSaisirButton opens the entry modal from the evening reminder. The
// prompted date rides in the button's custom ID.
func (b *Bot) handleSaisirButton(ctx context.Context, i *discordgo.InteractionCreate) error {
	raw := strings.TrimPrefix(i.MessageComponentData().CustomID, lang.Saisir.ButtonIDPrefix)
	date, ok := dateutil.Parse(raw)
	if !ok {
		return b.replyEphemeral(i, lang.Saisir.InvalidDate)
	}
	return b.showSaisirModal(ctx, i, date)
}

func (b *Bot) showSaisirModal(ctx context.Context, i *discordgo.InteractionCreate, date dateutil.Date) error {
	user := interactionUser(i)
	existing, err := b.entries.GetEntry(ctx, user.ID, date)
	if err != nil {
		return err
	}
	return b.showModal(i,
		lang.Saisir.ModalIDPrefix+date.String(),
		lang.SaisirModalTitle(date),
		textInput(inputSteps, lang.Saisir.StepsLabel, lang.Saisir.StepsPlaceholder, formatOptional(existing)),
	)
}

func (b *Bot) handleSaisirSubmit(ctx context.Context, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	user := interactionUser(i)

	date, ok := dateutil.Parse(strings.TrimPrefix(data.CustomID, lang.Saisir.ModalIDPrefix))
	if !ok {
		return b.replyEphemeral(i, lang.Saisir.InvalidDate)
	}

	steps, ok := parseOptionalCount(submittedValue(data, inputSteps))
	if !ok {
		return b.replyEphemeral(i, lang.Saisir.InvalidValue)
	}

	existing, err := b.entries.GetEntry(ctx, user.ID, date)
	if err != nil {
		return err
	}

	if steps == nil {
		if existing == nil {
			return b.replyEphemeral(i, lang.SaisirNoChange(date))
		}
		if err := b.entries.SetEntry(ctx, user.ID, date, nil); err != nil {
			return err
		}
		return b.reply(i, lang.SaisirDeleted(user.ID, date))
	}

	if existing != nil && *existing == *steps {
		return b.replyEphemeral(i, lang.SaisirNoChange(date))
	}

	if err := b.entries.SetEntry(ctx, user.ID, date, steps); err != nil {
		return err
	}

	files, err := b.entryReplyFiles(ctx, user, date)
	if err != nil {
		return err
	}
	return b.replyWithFiles(i, lang.SaisirSaved(user.ID, date), files)
}

// entryReplyFiles renders the daily card and, when the entry completed its
// week or month, the matching summary cards.
func (b *Bot) entryReplyFiles(ctx context.Context, user *discordgo.User, date dateutil.Date) ([]*discordgo.File, error) {
	avatar := b.avatarOf(ctx, user)

	daily, err := b.summaries.DailyCard(ctx, user.ID, date)
	if err != nil {
		return nil, err
	}
	daily.Avatar = avatar
	dailyPNG, err := image.RenderDailyCard(*daily)
	if err != nil {
		return nil, err
	}
	files := []*discordgo.File{
		pngFile(fmt.Sprintf("progress-%s-%s.png", user.ID, date), dailyPNG),
	}

	week, month, err := b.summaries.AfterEntryCards(ctx, user.ID, date)
	if err != nil {
		return nil, err
	}
	if week != nil {
		week.Avatar = avatar
		png, err := image.RenderWeeklyCard(*week)
		if err != nil {
			return nil, err
		}
		files = append(files, pngFile(fmt.Sprintf("weekly-%s-%s.png", user.ID, week.Date), png))
	}
	if month != nil {
		month.Avatar = avatar
		png, err := image.RenderMonthlyCard(*month)
		if err != nil {
			return nil, err
		}
		files = append(files, pngFile(fmt.Sprintf("monthly-%s-%s.png", user.ID, month.Date), png))
	}
	return files, nil
}
