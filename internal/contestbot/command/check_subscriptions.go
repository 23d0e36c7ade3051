package command

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type CheckSubscriptionsCommand struct {
	bt *bot.Bot
	us *services.UserService
	gs *services.GateService
	as *services.AdminService
}

func NewCheckSubscriptionsCommand(b *bot.Bot, us *services.UserService, gs *services.GateService, as *services.AdminService) *CheckSubscriptionsCommand {
	return &CheckSubscriptionsCommand{
		bt: b,
		us: us,
		gs: gs,
		as: as,
	}
}

func (c *CheckSubscriptionsCommand) Execute(ctx context.Context, callback *models.CallbackQuery) {
	userId := callback.From.ID

	gate, err := c.gs.Evaluate(ctx, userId)
	if err != nil {
		log.Error("Failed to evaluate subscriptions: ", err)
		util.AnswerCallback(ctx, c.bt, callback.ID, msgGenericError)
		return
	}

	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if !gate.Passed {
		util.AnswerCallback(ctx, c.bt, callback.ID, "❌ Siz hali barcha kanallarga obuna bo'lmagansiz!")
		if err := util.EditMessageText(
			ctx,
			c.bt,
			msg.Chat.ID,
			msg.ID,
			msgNotSubscribed,
			subscriptionWallMarkup(gate.Missing),
		); err != nil {
			log.Error(err)
		}
		return
	}

	util.AnswerCallback(ctx, c.bt, callback.ID, "✅ Tabriklaymiz! Siz barcha kanallarga obuna bo'ldingiz!")

	if err := util.DeleteMessage(ctx, c.bt, msg.Chat.ID, msg.ID); err != nil {
		log.Error(err)
	}

	user, err := c.us.GetById(ctx, userId)
	if err != nil {
		log.Error("Failed to load user: ", err)
		return
	}

	if !user.PhoneNumber.Valid {
		if err := userstate.SetState(ctx, userId, userstate.WaitingPhone); err != nil {
			log.Error("Failed to set state: ", err)
		}
		if _, err := util.SendTextMessageMarkup(
			c.bt,
			userId,
			msgPhoneRequest,
			util.CreateContactRequestMarkup(buttons.SharePhone),
		); err != nil {
			log.Error(err)
		}
		return
	}

	isAdmin := c.as.IsAdmin(ctx, userId)
	if _, err := util.SendTextMessageMarkup(c.bt, userId, msgMainMenu, mainMenuMarkup(isAdmin)); err != nil {
		log.Error(err)
	}
}
