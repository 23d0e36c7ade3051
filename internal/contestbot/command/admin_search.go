package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminSearchCommand struct {
	bt *bot.Bot
	us *services.UserService
}

func NewAdminSearchCommand(b *bot.Bot, us *services.UserService) *AdminSearchCommand {
	return &AdminSearchCommand{
		bt: b,
		us: us,
	}
}

func (c *AdminSearchCommand) Prompt(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if err := userstate.SetState(ctx, callback.From.ID, userstate.EnterSearchQuery); err != nil {
		log.Error("Failed to set state: ", err)
	}

	text := `🔍 FOYDALANUVCHI QIDIRISH

Qidirishni boshlash uchun quyidagilardan birini kiriting:
• Foydalanuvchi ID raqami
• Username (@username)
• Ism yoki familiya

Masalan: 123456789 yoki @username yoki Alisher`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminPanelId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminSearchCommand) HandleQuery(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID
	userstate.ResetState(ctx, chatId)

	term := strings.TrimSpace(msg.Text)

	users, err := c.us.Search(ctx, term, 10)
	if err != nil {
		log.Error("Search failed: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	var sb strings.Builder
	if len(users) == 0 {
		sb.WriteString(fmt.Sprintf("❌ '%v' bo'yicha hech narsa topilmadi.", term))
	} else {
		sb.WriteString(fmt.Sprintf("🔍 QIDIRUV NATIJALARI: '%v'\n\n", term))
		for _, user := range users {
			sb.WriteString(fmt.Sprintf("👤 %v\n   ID: %d\n", user.DisplayName(), user.Id))
			if user.Username.Valid {
				sb.WriteString(fmt.Sprintf("   Username: @%v\n", user.Username.String))
			}
			sb.WriteString(fmt.Sprintf("   Ball: %d\n", user.Balance))
			sb.WriteString(fmt.Sprintf("   Ro'yxatdan o'tgan: %v\n\n", user.RegisteredAt.Format("2006-01-02")))
		}
	}

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.AdminSearchId, "🔍 Qayta qidirish"),
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	if _, err := util.SendTextMessageMarkup(c.bt, chatId, sb.String(), markup); err != nil {
		log.Error(err)
	}
}
