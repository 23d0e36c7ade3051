package command

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/config"
	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

var log = config.InitLogger()

type StartCommand struct {
	bt *bot.Bot
	us *services.UserService
	gs *services.GateService
	as *services.AdminService
}

func NewStartCommand(b *bot.Bot, us *services.UserService, gs *services.GateService, as *services.AdminService) *StartCommand {
	return &StartCommand{
		bt: b,
		us: us,
		gs: gs,
		as: as,
	}
}

func (c *StartCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	var referrerId int64
	if parts := strings.Fields(msg.Text); len(parts) > 1 {
		if id, ok := util.ParseReferralPayload(parts[1]); ok {
			referrerId = id
		}
	}

	var username, firstName, lastName string
	if msg.From != nil {
		username = msg.From.Username
		firstName = msg.From.FirstName
		lastName = msg.From.LastName
	}

	user, err := c.us.Register(ctx, chatId, username, firstName, lastName, referrerId)
	if err != nil {
		log.Error("Failed to register user: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	gate, err := c.gs.Evaluate(ctx, chatId)
	if err != nil {
		log.Error("Failed to evaluate subscriptions: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	if !gate.Passed {
		if _, err := util.SendTextMessageMarkup(
			c.bt,
			chatId,
			msgStartWelcome,
			subscriptionWallMarkup(gate.Missing),
		); err != nil {
			log.Error(err)
		}
		return
	}

	if !user.PhoneNumber.Valid {
		if err := userstate.SetState(ctx, chatId, userstate.WaitingPhone); err != nil {
			log.Error("Failed to set state: ", err)
		}
		if _, err := util.SendTextMessageMarkup(
			c.bt,
			chatId,
			msgPhoneRequest,
			util.CreateContactRequestMarkup(buttons.SharePhone),
		); err != nil {
			log.Error(err)
		}
		return
	}

	isAdmin := c.as.IsAdmin(ctx, chatId)
	if _, err := util.SendTextMessageMarkup(c.bt, chatId, msgMainMenu, mainMenuMarkup(isAdmin)); err != nil {
		log.Error(err)
	}
}
