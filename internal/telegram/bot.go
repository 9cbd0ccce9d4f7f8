package telegram

import (
	"context"

	"cryptoalert-telegram-bot/internal/commands"
	"cryptoalert-telegram-bot/internal/database"
	"cryptoalert-telegram-bot/internal/market"
	"cryptoalert-telegram-bot/internal/session"
	"cryptoalert-telegram-bot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig, marketClient *market.Client) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:      bot,
		Config:   c,
		Market:   marketClient,
		Sessions: session.NewStore(),
	}, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// HandleUpdate routes a Telegram update to a command or, for free text, to
// whatever follow-up the user's session is awaiting. Returns the reply text.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) string {
	msg := u.Message
	if msg == nil || msg.From == nil {
		return ""
	}
	userID := msg.From.ID

	if msg.IsCommand() {
		log.Debugf("received command: %s", msg.Command())
		return b.handleCommand(ctx, msg)
	}

	return b.handleText(ctx, userID, msg.Text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) string {
	userID := msg.From.ID

	switch msg.Command() {
	case "register":
		return commands.CommandRegister(userID, msg.From.UserName, msg.From.FirstName, msg.From.LastName)
	case "help", "start":
		return commands.CommandHelp()
	}

	registered, err := database.IsUserRegistered(userID)
	if err != nil {
		log.Errorf("registration check failed for user %d: %v", userID, err)
		return translation.Translate("Something went wrong\\. Please try again\\.")
	}
	if !registered {
		return translation.Translate("Please register first using /register\\.")
	}

	switch msg.Command() {
	case "get_token":
		b.Sessions.Set(userID, session.StateAwaitingToken)
		return translation.Translate("Please enter the token symbol you want to check:")
	case "set_alert":
		b.Sessions.Set(userID, session.StateAwaitingAlert)
		return translation.Translate("Please enter the token symbol and price threshold \\(e\\.g\\. bitcoin 50000\\):")
	case "list_alerts":
		return commands.CommandListAlerts(userID)
	case "remove_alert":
		if args := msg.CommandArguments(); args != "" {
			return commands.RemoveAlert(userID, args)
		}
		b.Sessions.Set(userID, session.StateAwaitingRemoval)
		return translation.Translate("Please enter the Alert ID you want to remove:")
	}

	return commands.CommandHelp()
}

func (b *Bot) handleText(ctx context.Context, userID int64, text string) string {
	// One free-text message resolves the pending prompt, whatever it says.
	state := b.Sessions.Take(userID)

	registered, err := database.IsUserRegistered(userID)
	if err != nil {
		log.Errorf("registration check failed for user %d: %v", userID, err)
		return translation.Translate("Something went wrong\\. Please try again\\.")
	}
	if !registered {
		return translation.Translate("You are not registered\\. Please use the /register command to register\\.")
	}

	switch state {
	case session.StateAwaitingToken:
		return commands.HandleTokenInput(ctx, b.Market, text)
	case session.StateAwaitingAlert:
		return commands.HandleAlertInput(ctx, b.Market, userID, text)
	case session.StateAwaitingRemoval:
		return commands.RemoveAlert(userID, text)
	}

	return translation.Translate("Welcome\\! You can now interact with the bot\\. Use /help to see the available commands\\.")
}
