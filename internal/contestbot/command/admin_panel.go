package command

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminPanelCommand struct {
	bt *bot.Bot
	as *services.AdminService
}

func NewAdminPanelCommand(b *bot.Bot, as *services.AdminService) *AdminPanelCommand {
	return &AdminPanelCommand{
		bt: b,
		as: as,
	}
}

func adminPanelMarkup() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.AdminUsersId, "👥 Foydalanuvchilar"),
				util.CreateDefaultButton(buttons.AdminStatsId, "📊 Statistika"),
			},
			{
				util.CreateDefaultButton(buttons.AdminMessagingId, "💬 Xabar yuborish"),
				util.CreateDefaultButton(buttons.AdminSubscriptionsId, "📢 Obunalar"),
			},
			{
				util.CreateDefaultButton(buttons.AdminContestId, "🏆 Konkurs"),
				util.CreateDefaultButton(buttons.AdminTextsId, "📝 Matnlar"),
			},
			{
				util.CreateDefaultButton(buttons.AdminSearchId, "🔍 Qidirish"),
				util.CreateDefaultButton(buttons.AdminAdminsId, "⚙️ Adminlar"),
			},
			{
				util.CreateDefaultButton(buttons.BackToMenuId, buttons.BackText),
			},
		},
	}
}

// Execute opens the panel from the reply-keyboard entry.
func (c *AdminPanelCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	if !c.as.IsAdmin(ctx, chatId) {
		if _, err := util.SendTextMessage(c.bt, chatId, msgAdminNotAllowed); err != nil {
			log.Error(err)
		}
		return
	}

	text := "🗄 Admin paneli\n\nBoshqaruv paneliga xush kelibsiz!"
	if _, err := util.SendTextMessageMarkup(c.bt, chatId, text, adminPanelMarkup()); err != nil {
		log.Error(err)
	}
}

// Show re-renders the panel in place of an inline submenu.
func (c *AdminPanelCommand) Show(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	text := "🗄 Admin paneli\n\nBoshqaruv paneliga xush kelibsiz!"
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, adminPanelMarkup()); err != nil {
		log.Error(err)
	}
}

// BackToMenu leaves the panel for the main menu.
func (c *AdminPanelCommand) BackToMenu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message
	userId := callback.From.ID

	if err := util.DeleteMessage(ctx, c.bt, msg.Chat.ID, msg.ID); err != nil {
		log.Error(err)
	}

	isAdmin := c.as.IsAdmin(ctx, userId)
	if _, err := util.SendTextMessageMarkup(c.bt, userId, "🏠 Bosh menyu", mainMenuMarkup(isAdmin)); err != nil {
		log.Error(err)
	}
}
