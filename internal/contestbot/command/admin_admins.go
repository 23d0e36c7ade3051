package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/repositories"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminAdminsCommand struct {
	bt *bot.Bot
	as *services.AdminService
}

func NewAdminAdminsCommand(b *bot.Bot, as *services.AdminService) *AdminAdminsCommand {
	return &AdminAdminsCommand{
		bt: b,
		as: as,
	}
}

func (c *AdminAdminsCommand) Menu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	admins, err := c.as.List(ctx)
	if err != nil {
		log.Error("Failed to list admins: ", err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚙️ ADMINLAR BOSHQARUVI\n\n👥 Jami adminlar: %d\n\n", len(admins)))
	if len(admins) == 0 {
		sb.WriteString("❌ Admin ro'yxati bo'sh\n")
	} else {
		sb.WriteString("Hozirgi adminlar:\n")
		for _, admin := range admins {
			sb.WriteString(fmt.Sprintf("• %v (ID: %d)\n", adminDisplayName(admin.FirstName.String, admin.LastName.String, admin.Username.String, admin.UserId), admin.UserId))
		}
	}
	sb.WriteString("\nQuyidagi amallardan birini tanlang:")

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.AdminListId, "👥 Adminlar ro'yxati"),
				util.CreateDefaultButton(buttons.AddAdminUserId, "➕ Admin qo'shish"),
			},
			{
				util.CreateDefaultButton(buttons.RemoveAdminUserId, "➖ Admin o'chirish"),
			},
			{
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), markup); err != nil {
		log.Error(err)
	}
}

func (c *AdminAdminsCommand) List(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	admins, err := c.as.List(ctx)
	if err != nil {
		log.Error("Failed to list admins: ", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 ADMINLAR RO'YXATI\n\n")
	if len(admins) == 0 {
		sb.WriteString("❌ Admin ro'yxati bo'sh")
	}
	for i, admin := range admins {
		sb.WriteString(fmt.Sprintf("%d. %v\n   ID: %d\n   Qo'shilgan: %v\n\n",
			i+1,
			adminDisplayName(admin.FirstName.String, admin.LastName.String, admin.Username.String, admin.UserId),
			admin.UserId,
			admin.AddedAt.Format("2006-01-02")))
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), backMarkup(buttons.AdminAdminsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminAdminsCommand) PromptAdd(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if err := userstate.SetState(ctx, callback.From.ID, userstate.EnterNewAdminId); err != nil {
		log.Error("Failed to set state: ", err)
	}

	text := `➕ ADMIN QO'SHISH

Admin qilmoqchi bo'lgan foydalanuvchining ID raqamini yuboring.

Misol: 123456789

⚠️ ID raqami to'g'ri ekanligiga ishonch hosil qiling!`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminAdminsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminAdminsCommand) HandleAdd(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID
	userstate.ResetState(ctx, chatId)

	targetId, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		if _, err := util.SendTextMessage(c.bt, chatId, "❌ Noto'g'ri ID format! Faqat raqamlar kiriting."); err != nil {
			log.Error(err)
		}
		return
	}

	var text string
	switch err := c.as.Add(ctx, targetId, chatId); {
	case errors.Is(err, repositories.ErrAlreadyExists):
		text = fmt.Sprintf("❌ ID: %d allaqachon admin!", targetId)
	case err != nil:
		log.Error("Failed to add admin: ", err)
		text = fmt.Sprintf("❌ ID: %d adminni qo'shishda xatolik yuz berdi.", targetId)
	default:
		text = fmt.Sprintf("✅ ID: %d muvaffaqiyatli admin qilib qo'shildi!", targetId)
	}

	if _, err := util.SendTextMessageMarkup(c.bt, chatId, text, backMarkup(buttons.AdminPanelId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminAdminsCommand) PromptRemove(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	admins, err := c.as.List(ctx)
	if err != nil {
		log.Error("Failed to list admins: ", err)
		return
	}

	removable := make([]models.InlineKeyboardButton, 0, len(admins))
	for _, admin := range admins {
		if admin.UserId == callback.From.ID {
			continue
		}
		removable = append(removable, util.CreateDefaultButton(
			fmt.Sprintf("%v%d", buttons.RemoveAdminPrefix, admin.UserId),
			fmt.Sprintf("➖ %v", adminDisplayName(admin.FirstName.String, admin.LastName.String, admin.Username.String, admin.UserId)),
		))
	}

	if len(removable) == 0 {
		text := "❌ O'chirish uchun admin yo'q yoki siz faqat adminni o'zingiz o'chira olmaysiz!"
		if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminAdminsId)); err != nil {
			log.Error(err)
		}
		return
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(removable)+1)
	for _, btn := range removable {
		keyboard = append(keyboard, []models.InlineKeyboardButton{btn})
	}
	keyboard = append(keyboard, []models.InlineKeyboardButton{
		util.CreateDefaultButton(buttons.AdminAdminsId, buttons.BackText),
	})

	text := "➖ ADMINNI O'CHIRISH\n\nO'chirish uchun adminni tanlang:"
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}); err != nil {
		log.Error(err)
	}
}

func (c *AdminAdminsCommand) Remove(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	idStr := strings.TrimPrefix(callback.Data, buttons.RemoveAdminPrefix)
	targetId, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Error("Bad admin id: ", callback.Data)
		return
	}

	var text string
	switch err := c.as.Remove(ctx, callback.From.ID, targetId); {
	case errors.Is(err, services.ErrSelfRemoval):
		text = "❌ O'zingizni admin ro'yxatidan o'chira olmaysiz!"
	case err != nil:
		log.Error("Failed to remove admin: ", err)
		text = fmt.Sprintf("❌ Admin (ID: %d) ni o'chirishda xatolik yuz berdi.", targetId)
	default:
		text = fmt.Sprintf("✅ Admin (ID: %d) muvaffaqiyatli o'chirildi!", targetId)
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminAdminsId)); err != nil {
		log.Error(err)
	}
}

func adminDisplayName(firstName, lastName, username string, userId int64) string {
	if firstName != "" {
		if lastName != "" {
			return firstName + " " + lastName
		}
		return firstName
	}
	if username != "" {
		return username
	}
	return fmt.Sprintf("User %d", userId)
}
