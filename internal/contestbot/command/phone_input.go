package command

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type PhoneInputCommand struct {
	bt *bot.Bot
	us *services.UserService
	as *services.AdminService
}

func NewPhoneInputCommand(b *bot.Bot, us *services.UserService, as *services.AdminService) *PhoneInputCommand {
	return &PhoneInputCommand{
		bt: b,
		us: us,
		as: as,
	}
}

func (c *PhoneInputCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	phone := strings.TrimSpace(msg.Text)
	if msg.Contact != nil {
		phone = msg.Contact.PhoneNumber
		if !strings.HasPrefix(phone, "+") {
			phone = "+" + phone
		}
	}

	err := c.us.VerifyPhone(ctx, chatId, phone)
	switch {
	case errors.Is(err, services.ErrInvalidPhone):
		if _, err := util.SendTextMessage(c.bt, chatId, msgInvalidPhone); err != nil {
			log.Error(err)
		}
		return
	case errors.Is(err, services.ErrPhoneAlreadySet):
		// already registered, fall through to the menu
	case err != nil:
		log.Error("Failed to verify phone: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	default:
		if _, err := util.SendTextMessage(c.bt, chatId, msgRegistrationSuccess); err != nil {
			log.Error(err)
		}
	}

	userstate.ResetState(ctx, chatId)

	isAdmin := c.as.IsAdmin(ctx, chatId)
	if _, err := util.SendTextMessageMarkup(c.bt, chatId, msgMainMenu, mainMenuMarkup(isAdmin)); err != nil {
		log.Error(err)
	}
}
