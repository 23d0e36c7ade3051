package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminStatsCommand struct {
	bt    *bot.Bot
	stats *services.StatsService
	rs    *services.ReferralService
	es    *services.ExportService
}

func NewAdminStatsCommand(b *bot.Bot, stats *services.StatsService, rs *services.ReferralService, es *services.ExportService) *AdminStatsCommand {
	return &AdminStatsCommand{
		bt:    b,
		stats: stats,
		rs:    rs,
		es:    es,
	}
}

func (c *AdminStatsCommand) Menu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.StatsTodayId, "📅 Bugun"),
				util.CreateDefaultButton(buttons.StatsWeekId, "📅 Hafta"),
			},
			{
				util.CreateDefaultButton(buttons.StatsMonthId, "📅 Oy"),
				util.CreateDefaultButton(buttons.StatsAllId, "📊 Umumiy"),
			},
			{
				util.CreateDefaultButton(buttons.TopReferrersId, "👆 Top referrallar"),
				util.CreateDefaultButton(buttons.GrowthStatsId, "📈 O'sish dinamikasi"),
			},
			{
				util.CreateDefaultButton(buttons.ExportStatsId, "📄 Excel yuklab olish"),
			},
			{
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	text := "📊 Statistika bo'limi\n\nKerakli davrni tanlang:"
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, markup); err != nil {
		log.Error(err)
	}
}

func (c *AdminStatsCommand) Today(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	stat, err := c.stats.DayStats(ctx, 0)
	if err != nil {
		log.Error("Failed to load daily stats: ", err)
		return
	}

	text := fmt.Sprintf(`📅 BUGUNGI STATISTIKA

📊 Sana: %v

👤 Yangi foydalanuvchilar: %d
🟢 Faol foydalanuvchilar: %d
💬 Yuborilgan xabarlar: %d
👆 Yangi referrallar: %d`,
		stat.Day.Format("2006-01-02"), stat.NewUsers, stat.ActiveUsers, stat.MessagesSent, stat.ReferralsMade)

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminStatsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminStatsCommand) Period(ctx context.Context, callback *models.CallbackQuery, days int, title string) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	stats, err := c.stats.PeriodStats(ctx, days)
	if err != nil {
		log.Error("Failed to load period stats: ", err)
		return
	}

	text := fmt.Sprintf(`📅 %v

👤 Yangi foydalanuvchilar: %d
🟢 O'rtacha faol foydalanuvchilar: %d
💬 Yuborilgan xabarlar: %d
👆 Yangi referrallar: %d`,
		title, stats.NewUsers, stats.AvgActiveUsers, stats.MessagesSent, stats.ReferralsMade)

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminStatsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminStatsCommand) AllTime(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	stats, err := c.stats.AllTime(ctx)
	if err != nil {
		log.Error("Failed to load all-time stats: ", err)
		return
	}

	text := fmt.Sprintf(`📊 UMUMIY STATISTIKA

👥 Jami foydalanuvchilar: %d
🟢 Bugun faol: %d
📅 Bu hafta faol: %d
📆 Bu oy faol: %d
👆 Jami referrallar: %d
💬 Jami xabarlar: %d`,
		stats.TotalUsers, stats.ActiveToday, stats.ActiveWeek, stats.ActiveMonth, stats.TotalReferrals, stats.TotalMessages)

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminStatsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminStatsCommand) TopReferrers(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	top, err := c.rs.TopReferrers(ctx, 10)
	if err != nil {
		log.Error("Failed to load top referrers: ", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("👆 TOP REFERRALLAR\n\n")
	if len(top) == 0 {
		sb.WriteString("❌ Referrallar topilmadi")
	}
	for i, ref := range top {
		sb.WriteString(fmt.Sprintf("%d. %v - %d ta referal\n", i+1, ref.DisplayName(), ref.Referrals))
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), backMarkup(buttons.AdminStatsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminStatsCommand) Growth(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	points, err := c.stats.Growth(ctx, 7)
	if err != nil {
		log.Error("Failed to load growth stats: ", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📈 O'SISH DINAMIKASI (So'nggi 7 kun)\n\n")

	if len(points) == 0 {
		sb.WriteString("❌ Ma'lumotlar topilmadi")
	} else {
		totalNew := 0
		for _, p := range points {
			totalNew += p.NewUsers
		}
		sb.WriteString(fmt.Sprintf("📊 Jami yangi foydalanuvchilar: %d\n\n", totalNew))

		start := 0
		if len(points) > 5 {
			start = len(points) - 5
		}
		for _, p := range points[start:] {
			sb.WriteString(fmt.Sprintf("📅 %v: +%d yangi\n", p.Day.Format("2006-01-02"), p.NewUsers))
		}
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), backMarkup(buttons.AdminStatsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminStatsCommand) Export(ctx context.Context, callback *models.CallbackQuery) {
	userId := callback.From.ID
	util.AnswerCallback(ctx, c.bt, callback.ID, "📄 Statistika fayli tayyorlanmoqda...")

	buf, err := c.es.BuildWorkbook(ctx)
	if err != nil {
		log.Error("Failed to build stats export: ", err)
		if _, err := util.SendTextMessage(c.bt, userId, "❌ Excel fayl yaratishda xatolik yuz berdi."); err != nil {
			log.Error(err)
		}
		return
	}

	filename := fmt.Sprintf("statistika_%v.xlsx", time.Now().Format("02.01.2006"))
	caption := "📄 Bot statistikasi\n📅 Sanasi: " + time.Now().Format("02.01.2006 15:04")
	if err := util.SendDocument(c.bt, userId, filename, buf, caption); err != nil {
		return
	}

	if _, err := util.SendTextMessage(c.bt, userId, "✅ Excel fayl muvaffaqiyatli yuborildi!"); err != nil {
		log.Error(err)
	}
}
