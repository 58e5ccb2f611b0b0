// Package lang centralizes every user-visible string. The bot speaks French;
// keeping the strings in one place keeps the handlers and renderers free of
// literals.
package lang

import (
	"fmt"
	"strings"

	"github.com/stridebot/stridebot/internal/dateutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frPrinter = message.NewPrinter(language.French)

// N formats an integer with French thousands separators (8 000, 63 400).
func N(n int) string {
	return frPrinter.Sprintf("%d", n)
}

// Mention renders a Discord user mention.
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// Objectif — the /objectif command and its modal.
var Objectif = struct {
	Description       string
	UserOptionDesc    string
	ModalTitle        string
	DailyLabel        string
	DailyPlaceholder  string
	WeeklyLabel       string
	WeeklyPlaceholder string
	InvalidValue      string
}{
	Description:       "Afficher ou définir un objectif de pas",
	UserOptionDesc:    "Utilisateur cible (défaut: toi)",
	ModalTitle:        "Définir mes objectifs",
	DailyLabel:        "Objectif de pas par jour",
	DailyPlaceholder:  "8000",
	WeeklyLabel:       "Objectif de pas par semaine",
	WeeklyPlaceholder: "40000",
	InvalidValue:      "Valeur invalide : entrer un entier >= 0.",
}

func ObjectifCleared(userID string) string {
	return fmt.Sprintf("%s a supprimé ses objectifs.", Mention(userID))
}

func ObjectifSet(userID string, daily, weekly *int) string {
	parts := []string{}
	if daily != nil {
		parts = append(parts, fmt.Sprintf("%s pas par jour", N(*daily)))
	}
	if weekly != nil {
		parts = append(parts, fmt.Sprintf("%s pas par semaine", N(*weekly)))
	}
	if len(parts) == 0 {
		return ObjectifCleared(userID)
	}
	return fmt.Sprintf("%s a un nouvel objectif de %s.", Mention(userID), strings.Join(parts, " et "))
}

func ObjectifNone(userID string) string {
	return fmt.Sprintf("%s n'a pas d'objectif.", Mention(userID))
}

func ObjectifOf(userID string, daily, weekly *int) string {
	if daily == nil && weekly == nil {
		return ObjectifNone(userID)
	}
	parts := []string{}
	if daily != nil {
		parts = append(parts, fmt.Sprintf("%s pas par jour", N(*daily)))
	}
	if weekly != nil {
		parts = append(parts, fmt.Sprintf("%s pas par semaine", N(*weekly)))
	}
	return fmt.Sprintf("%s a un objectif de %s.", Mention(userID), strings.Join(parts, " et "))
}

// Saisir — the /saisir command, its modal and the daily card.
var Saisir = struct {
	Description      string
	DayOptionDesc    string
	StepsLabel       string
	StepsPlaceholder string
	ButtonLabel      string
	InvalidDate      string
	InvalidValue     string
	ModalIDPrefix    string
	ButtonIDPrefix   string
}{
	Description:      "Saisir les pas du jour via un formulaire.",
	DayOptionDesc:    "Date AAAA-MM-JJ (optionnel, défaut: aujourd'hui Europe/Paris)",
	StepsLabel:       "Nombre de pas",
	StepsPlaceholder: "7800",
	ButtonLabel:      "Saisir ma journée",
	InvalidDate:      "Date invalide. Format attendu AAAA-MM-JJ.",
	InvalidValue:     "Valeur invalide : entrer un entier >= 0.",
	ModalIDPrefix:    "saisir-modal-",
	ButtonIDPrefix:   "saisir-btn-",
}

func SaisirModalTitle(date dateutil.Date) string {
	return fmt.Sprintf("Saisir les pas pour %s", date)
}

func SaisirSaved(userID string, date dateutil.Date) string {
	return fmt.Sprintf("%s a enregistré ses pas du %s.", Mention(userID), date)
}

func SaisirDeleted(userID string, date dateutil.Date) string {
	return fmt.Sprintf("%s a supprimé la saisie du %s.", Mention(userID), date)
}

func SaisirNoChange(date dateutil.Date) string {
	return fmt.Sprintf("Aucun changement pour %s.", date)
}

// Card labels shared by the renderers.

func DailyCardTitle(date dateutil.Date) string {
	return capitalize(date.FormatFull())
}

func WeeklyCardTitle(monday dateutil.Date) string {
	return fmt.Sprintf("Semaine du %s", monday.FormatFull())
}

func MonthlyCardTitle(firstDay dateutil.Date) string {
	return capitalize(firstDay.FormatMonthYear())
}

func StreakBadge(n int) string {
	return fmt.Sprintf("%d j 🔥", n)
}

func FieldTotal(total int) string {
	return fmt.Sprintf("Total : %s pas", N(total))
}

func FieldAverage(avg int) string {
	return fmt.Sprintf("Moyenne : %s pas", N(avg))
}

func FieldDaysEntered(n int) string {
	return fmt.Sprintf("Jours saisis : %d", n)
}

func FieldDaysSucceeded(n int) string {
	return fmt.Sprintf("Jours réussis : %d", n)
}

func FieldBestStreak(n int) string {
	return fmt.Sprintf("Meilleure série : %d", n)
}

func GoalFraction(goal int) string {
	return fmt.Sprintf("/ %s", N(goal))
}

func WeeklyBarProgress(steps, goal int) string {
	return fmt.Sprintf("%s / %s", N(steps), N(goal))
}

func WeeklyRemainingPerDay(perDay int) string {
	return fmt.Sprintf("  Reste : %s / jour", N(perDay))
}

func WeeklyRemainingLast(remaining int) string {
	return fmt.Sprintf("  Reste : %s", N(remaining))
}

func WeeklyBarLabel(total, average int) string {
	return fmt.Sprintf("Total : %s  Moyenne : %s", N(total), N(average))
}

// ResumeSemaine / ResumeMois — the summary commands.
var Resume = struct {
	WeekDescription  string
	MondayOptionDesc string
	InvalidMonday    string
	MonthDescription string
	MonthOptionDesc  string
	InvalidMonth     string
}{
	WeekDescription:  "Afficher un résumé de la semaine (lundi->dimanche)",
	MondayOptionDesc: "Date du lundi (AAAA-MM-JJ) de la semaine à résumer (optionnel)",
	InvalidMonday:    "Date du lundi invalide.",
	MonthDescription: "Afficher un résumé du mois",
	MonthOptionDesc:  "Un jour du mois (AAAA-MM-JJ) à résumer (optionnel)",
	InvalidMonth:     "Date invalide.",
}

func WeeklySummaryMessage(userID string, monday dateutil.Date) string {
	return fmt.Sprintf("Résumé de la semaine du %s pour %s", monday, Mention(userID))
}

func MonthlySummaryMessage(userID string, firstDay dateutil.Date) string {
	return fmt.Sprintf("Résumé de %s pour %s", firstDay.FormatMonthYear(), Mention(userID))
}

// Scheduler messages.

func DailyPromptMessage(clock string, userIDs []string, date dateutil.Date) string {
	mentions := make([]string, len(userIDs))
	for i, id := range userIDs {
		mentions[i] = Mention(id)
	}
	return fmt.Sprintf("Il est %s Europe/Paris. %s\nVous n'avez pas encore saisi vos pas du %s. Cliquez sur le bouton ci-dessous pour enregistrer.",
		clock, strings.Join(mentions, " "), date)
}

// Ping.
var Ping = struct {
	Description string
	Reply       string
}{
	Description: "Vérifier que le bot répond",
	Reply:       "Pong !",
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
