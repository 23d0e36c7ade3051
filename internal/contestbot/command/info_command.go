package command

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/services"
	"contestbot/internal/util"
)

// InfoCommand sends one of the admin-editable text blocks.
type InfoCommand struct {
	bt  *bot.Bot
	ss  *services.SettingsService
	key string
}

func NewContestInfoCommand(b *bot.Bot, ss *services.SettingsService) *InfoCommand {
	return &InfoCommand{bt: b, ss: ss, key: services.SettingContestInfo}
}

func NewGiftsInfoCommand(b *bot.Bot, ss *services.SettingsService) *InfoCommand {
	return &InfoCommand{bt: b, ss: ss, key: services.SettingGiftsInfo}
}

func NewTermsInfoCommand(b *bot.Bot, ss *services.SettingsService) *InfoCommand {
	return &InfoCommand{bt: b, ss: ss, key: services.SettingTermsInfo}
}

func (c *InfoCommand) Execute(ctx context.Context, msg *models.Message) {
	text := c.ss.Get(ctx, c.key, services.DefaultTexts[c.key])
	if _, err := util.SendTextMessage(c.bt, msg.Chat.ID, text); err != nil {
		log.Error(err)
	}
}
