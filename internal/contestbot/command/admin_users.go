package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/config"
	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminUsersCommand struct {
	bt      *bot.Bot
	us      *services.UserService
	ranking *services.RankingService
	es      *services.ExportService
}

func NewAdminUsersCommand(b *bot.Bot, us *services.UserService, ranking *services.RankingService, es *services.ExportService) *AdminUsersCommand {
	return &AdminUsersCommand{
		bt:      b,
		us:      us,
		ranking: ranking,
		es:      es,
	}
}

func (c *AdminUsersCommand) Menu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.AdminSearchId, "👤 Foydalanuvchi qidirish"),
				util.CreateDefaultButton(buttons.UserListId, "📋 Ro'yxat"),
			},
			{
				util.CreateDefaultButton(buttons.ActiveUsersId, "📊 Faol foydalanuvchilar"),
				util.CreateDefaultButton(buttons.NewUsersId, "📈 Yangi foydalanuvchilar"),
			},
			{
				util.CreateDefaultButton(buttons.ExportUsersId, "📄 Excel eksport"),
			},
			{
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	total, err := c.us.CountRegistered(ctx)
	if err != nil {
		log.Error("Failed to count users: ", err)
	}

	text := fmt.Sprintf("👥 Foydalanuvchilar boshqaruvi\n\n📊 Jami ro'yxatdan o'tganlar: %d", total)
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, markup); err != nil {
		log.Error(err)
	}
}

func (c *AdminUsersCommand) UserList(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	top, err := c.ranking.Top(ctx, config.TOP_RATING_COUNT)
	if err != nil {
		log.Error("Failed to load user list: ", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 FOYDALANUVCHILAR RO'YXATI (TOP 20)\n\n")
	if len(top) == 0 {
		sb.WriteString("❌ Foydalanuvchilar topilmadi")
	}
	for i, user := range top {
		sb.WriteString(fmt.Sprintf("%d. %v - %d ball\n   ID: %d\n\n", i+1, user.DisplayName(), user.Balance, user.Id))
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), backMarkup(buttons.AdminUsersId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminUsersCommand) ActiveUsers(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	today, _ := c.us.CountActiveLastDays(ctx, 1)
	week, _ := c.us.CountActiveLastDays(ctx, 7)
	month, _ := c.us.CountActiveLastDays(ctx, 30)

	text := fmt.Sprintf(`📊 FAOL FOYDALANUVCHILAR

🟢 Bugun faol: %d
📅 Bu hafta faol: %d
📆 Bu oy faol: %d

Bu ma'lumotlar so'nggi faollik vaqtiga asoslangan.`, today, week, month)

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminUsersId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminUsersCommand) NewUsers(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	today, _ := c.us.CountRegisteredLastDays(ctx, 1)
	week, _ := c.us.CountRegisteredLastDays(ctx, 7)
	month, _ := c.us.CountRegisteredLastDays(ctx, 30)

	text := fmt.Sprintf(`📈 YANGI FOYDALANUVCHILAR

📅 Bugun ro'yxatdan o'tgan: %d
📅 Bu hafta ro'yxatdan o'tgan: %d
📅 Bu oy ro'yxatdan o'tgan: %d`, today, week, month)

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminUsersId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminUsersCommand) Export(ctx context.Context, callback *models.CallbackQuery) {
	userId := callback.From.ID
	util.AnswerCallback(ctx, c.bt, callback.ID, "📄 Excel fayl tayyorlanmoqda...")

	buf, err := c.es.BuildWorkbook(ctx)
	if err != nil {
		log.Error("Failed to build export: ", err)
		if _, err := util.SendTextMessage(c.bt, userId, "❌ Excel fayl yaratishda xatolik yuz berdi."); err != nil {
			log.Error(err)
		}
		return
	}

	filename := fmt.Sprintf("foydalanuvchilar_%v.xlsx", time.Now().Format("02.01.2006"))
	caption := "📄 Foydalanuvchilar ro'yxati\n📅 Sanasi: " + time.Now().Format("02.01.2006 15:04")
	if err := util.SendDocument(c.bt, userId, filename, buf, caption); err != nil {
		if _, err := util.SendTextMessage(c.bt, userId, "❌ Excel fayl yaratishda xatolik yuz berdi."); err != nil {
			log.Error(err)
		}
		return
	}

	if _, err := util.SendTextMessage(c.bt, userId, "✅ Excel fayl muvaffaqiyatli yuborildi!"); err != nil {
		log.Error(err)
	}
}
