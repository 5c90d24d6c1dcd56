// internal/interface/bot/bot.go
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
)

// Bot is the Telegram command surface for viewing and editing the filter
// stores. It is the only writer of the exclusion list and the watchlists;
// the engine just reads them.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64

	exclusions    repository.ExclusionRepository
	regoWatchlist repository.RegoWatchlistRepository
	typeWatchlist repository.TypeWatchlistRepository

	logger logger.Logger
}

// NewBot creates the filter editing bot on an already authorized API handle.
func NewBot(
	api *tgbotapi.BotAPI,
	chatID int64,
	exclusions repository.ExclusionRepository,
	regoWatchlist repository.RegoWatchlistRepository,
	typeWatchlist repository.TypeWatchlistRepository,
	logger logger.Logger,
) *Bot {
	return &Bot{
		api:           api,
		chatID:        chatID,
		exclusions:    exclusions,
		regoWatchlist: regoWatchlist,
		typeWatchlist: typeWatchlist,
		logger:        logger,
	}
}

// Run consumes bot updates until the context is cancelled. Only messages
// from the configured chat are honored.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("filter bot stopped")
			return
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if update.Message.Chat.ID != b.chatID {
				b.logger.Warn("ignoring command from unknown chat", "chatId", update.Message.Chat.ID)
				continue
			}
			b.reply(b.handleCommand(update.Message))
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) string {
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "filters":
		return b.renderFilters()
	case "exclude":
		return b.addExclusion(args)
	case "watch_rego":
		return b.addRegoWatch(args)
	case "watch_type":
		return b.addTypeWatch(args)
	case "del_exclusion":
		return b.deleteEntries(args, b.exclusions.Delete, "Exclusion List")
	case "del_rego":
		return b.deleteEntries(args, b.regoWatchlist.Delete, "Rego Watchlist")
	case "del_type":
		return b.deleteEntries(args, b.typeWatchlist.Delete, "Type Watchlist")
	case "help", "start":
		return helpText
	default:
		return "Unknown command. " + helpText
	}
}

const helpText = `Commands:
/filters — show all filter lists
/exclude AIRLINE,REGO,DESCRIPTION — add to the exclusion list
/watch_rego AIRLINE,REGO,DESCRIPTION — watch a registration
/watch_type AIRLINE,TYPE — watch an airline/type pair
/del_exclusion INDEX[,INDEX...] — delete exclusion entries
/del_rego INDEX[,INDEX...] — delete rego watchlist entries
/del_type INDEX[,INDEX...] — delete type watchlist entries`

func (b *Bot) renderFilters() string {
	var sections []string

	exclusions, err := b.exclusions.List()
	if err != nil {
		return "Failed to read exclusion list: " + err.Error()
	}
	var sb strings.Builder
	sb.WriteString("<b>Exclusion List</b>")
	if len(exclusions) == 0 {
		sb.WriteString("\nempty")
	}
	for i, e := range exclusions {
		fmt.Fprintf(&sb, "\n\nIndex: %d\nAirline: %s\nRegistration: %s\nDescription: %s",
			i, e.Airline, e.Registration, e.Description)
	}
	sections = append(sections, sb.String())

	regos, err := b.regoWatchlist.List()
	if err != nil {
		return "Failed to read rego watchlist: " + err.Error()
	}
	sb.Reset()
	sb.WriteString("<b>Rego Watchlist</b>")
	if len(regos) == 0 {
		sb.WriteString("\nempty")
	}
	for i, e := range regos {
		fmt.Fprintf(&sb, "\n\nIndex: %d\nAirline: %s\nRegistration: %s\nDescription: %s",
			i, e.Airline, e.Registration, e.Description)
	}
	sections = append(sections, sb.String())

	types, err := b.typeWatchlist.List()
	if err != nil {
		return "Failed to read type watchlist: " + err.Error()
	}
	sb.Reset()
	sb.WriteString("<b>Type Watchlist</b>")
	if len(types) == 0 {
		sb.WriteString("\nempty")
	}
	for i, e := range types {
		fmt.Fprintf(&sb, "\n\nIndex: %d\nAirline: %s\nAircraft Type: %s",
			i, e.Airline, e.AircraftType)
	}
	sections = append(sections, sb.String())

	return strings.Join(sections, "\n\n")
}

func (b *Bot) addExclusion(args string) string {
	airline, rego, description, ok := splitThree(args)
	if !ok {
		return "Usage: /exclude AIRLINE,REGO,DESCRIPTION (e.g. QFA,VH-XZP,Qantas Retro Roo)"
	}
	entry := &entity.ExclusionEntry{Airline: airline, Registration: rego, Description: description}
	if err := b.exclusions.Add(entry); err != nil {
		b.logger.Error("failed to add exclusion", "error", err)
		return "Failed to add entry: " + err.Error()
	}
	return fmt.Sprintf("Added to Exclusion List: %s (%s) — %s", rego, airline, description)
}

func (b *Bot) addRegoWatch(args string) string {
	airline, rego, description, ok := splitThree(args)
	if !ok {
		return "Usage: /watch_rego AIRLINE,REGO,DESCRIPTION (e.g. QFA,VH-XZP,Qantas Retro Roo)"
	}
	entry := &entity.RegoWatchlistEntry{Airline: airline, Registration: rego, Description: description}
	if err := b.regoWatchlist.Add(entry); err != nil {
		b.logger.Error("failed to add rego watch", "error", err)
		return "Failed to add entry: " + err.Error()
	}
	return fmt.Sprintf("Watching registration %s (%s) — %s", rego, airline, description)
}

func (b *Bot) addTypeWatch(args string) string {
	parts := splitFields(args, 2)
	if parts == nil {
		return "Usage: /watch_type AIRLINE,TYPE (e.g. QFA,B744)"
	}
	entry := &entity.TypeWatchlistEntry{Airline: parts[0], AircraftType: parts[1]}
	if err := b.typeWatchlist.Add(entry); err != nil {
		b.logger.Error("failed to add type watch", "error", err)
		return "Failed to add entry: " + err.Error()
	}
	return fmt.Sprintf("Watching type %s operated by %s", parts[1], parts[0])
}

func (b *Bot) deleteEntries(args string, delete func([]int) error, listName string) string {
	if args == "" {
		return "Provide the index(es) to delete, separated by comma (e.g. 1,4,6)"
	}
	var indexes []int
	for _, part := range strings.Split(args, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return "Invalid index: " + part
		}
		indexes = append(indexes, idx)
	}
	if err := delete(indexes); err != nil {
		b.logger.Error("failed to delete entries", "list", listName, "error", err)
		return "Failed to delete: " + err.Error()
	}
	return fmt.Sprintf("Deleted %d entry(ies) from %s", len(indexes), listName)
}

func (b *Bot) reply(text string) {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send bot reply", "error", err)
	}
}

// splitThree splits "a,b,c" where the description may itself contain commas.
func splitThree(args string) (string, string, string, bool) {
	parts := strings.SplitN(args, ",", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func splitFields(args string, want int) []string {
	parts := strings.Split(args, ",")
	if len(parts) != want {
		return nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil
		}
	}
	return parts
}
