package command

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminTextsCommand struct {
	bt *bot.Bot
	ss *services.SettingsService
}

func NewAdminTextsCommand(b *bot.Bot, ss *services.SettingsService) *AdminTextsCommand {
	return &AdminTextsCommand{
		bt: b,
		ss: ss,
	}
}

type editableText struct {
	key   string
	title string
	state int
}

var editableTexts = map[string]editableText{
	buttons.EditContestTextId: {services.SettingContestInfo, "🔴 KONKURS MATNI", userstate.EditContestText},
	buttons.EditGiftsTextId:   {services.SettingGiftsInfo, "🎁 SOVG'ALAR MATNI", userstate.EditGiftsText},
	buttons.EditTermsTextId:   {services.SettingTermsInfo, "💡 SHARTLAR MATNI", userstate.EditTermsText},
}

func (c *AdminTextsCommand) Menu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.EditContestTextId, "🔴 Konkurs matni"),
				util.CreateDefaultButton(buttons.EditGiftsTextId, "🎁 Sovg'alar matni"),
			},
			{
				util.CreateDefaultButton(buttons.EditTermsTextId, "💡 Shartlar matni"),
			},
			{
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	text := "📝 Matnlar tahriri\n\nQaysi matnni o'zgartirmoqchisiz?"
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, markup); err != nil {
		log.Error(err)
	}
}

func (c *AdminTextsCommand) PromptEdit(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	entry, ok := editableTexts[callback.Data]
	if !ok {
		log.Error("Unknown text edit target: ", callback.Data)
		return
	}

	if err := userstate.SetState(ctx, callback.From.ID, entry.state); err != nil {
		log.Error("Failed to set state: ", err)
	}

	current := c.ss.Get(ctx, entry.key, services.DefaultTexts[entry.key])
	if len(current) > 500 {
		current = current[:500] + "..."
	}

	text := fmt.Sprintf(`📝 %v TAHRIRLASH

Hozirgi matn:
%v

Yangi matnni yozing:`, entry.title, current)
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminTextsId)); err != nil {
		log.Error(err)
	}
}

// HandleEdit saves the new text for the state the admin is in.
func (c *AdminTextsCommand) HandleEdit(ctx context.Context, state int, msg *models.Message) {
	chatId := msg.Chat.ID
	userstate.ResetState(ctx, chatId)

	var key, confirmation string
	switch state {
	case userstate.EditContestText:
		key, confirmation = services.SettingContestInfo, "✅ Konkurs matni muvaffaqiyatli yangilandi!"
	case userstate.EditGiftsText:
		key, confirmation = services.SettingGiftsInfo, "✅ Sovg'alar matni muvaffaqiyatli yangilandi!"
	case userstate.EditTermsText:
		key, confirmation = services.SettingTermsInfo, "✅ Shartlar matni muvaffaqiyatli yangilandi!"
	default:
		return
	}

	if err := c.ss.Set(ctx, key, msg.Text); err != nil {
		log.Error("Failed to save text: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	if _, err := util.SendTextMessageMarkup(c.bt, chatId, confirmation, backMarkup(buttons.AdminPanelId)); err != nil {
		log.Error(err)
	}
}
