package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/config"
	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminContestCommand struct {
	bt      *bot.Bot
	ss      *services.SettingsService
	us      *services.UserService
	ranking *services.RankingService
	stats   *services.StatsService
}

func NewAdminContestCommand(b *bot.Bot, ss *services.SettingsService, us *services.UserService, ranking *services.RankingService, stats *services.StatsService) *AdminContestCommand {
	return &AdminContestCommand{
		bt:      b,
		ss:      ss,
		us:      us,
		ranking: ranking,
		stats:   stats,
	}
}

func (c *AdminContestCommand) Menu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.StartContestId, "▶️ Konkursni boshlash"),
				util.CreateDefaultButton(buttons.StopContestId, "⏹ To'xtatish"),
			},
			{
				util.CreateDefaultButton(buttons.ResetBalancesId, "🔄 Ballarni nollash"),
				util.CreateDefaultButton(buttons.ContestWinnersId, "🏆 Top 20 g'olib"),
			},
			{
				util.CreateDefaultButton(buttons.ContestStatisticsId, "📊 Konkurs statistikasi"),
			},
			{
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	status := "⏹ To'xtatilgan"
	if c.ss.IsContestActive(ctx) {
		status = "✅ Faol"
	}

	text := fmt.Sprintf("🏆 Konkurs boshqaruvi\n\n🎯 Hozirgi status: %v", status)
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, markup); err != nil {
		log.Error(err)
	}
}

func (c *AdminContestCommand) Start(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if err := c.ss.SetContestActive(ctx, true); err != nil {
		log.Error("Failed to start contest: ", err)
		return
	}

	text := `▶️ KONKURS BOSHLANDI!

✅ Konkurs faol holga o'tkazildi.
Foydalanuvchilar endi to'liq ishtirok eta olishadi!`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminContestId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminContestCommand) Stop(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if err := c.ss.SetContestActive(ctx, false); err != nil {
		log.Error("Failed to stop contest: ", err)
		return
	}

	text := `⏹ KONKURS TO'XTATILDI!

✅ Konkurs to'xtatildi.
Foydalanuvchilar balllarini ko'rishlari mumkin, lekin yangi ball to'play olmaydilar.`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminContestId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminContestCommand) Winners(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	winners, err := c.ranking.Top(ctx, config.TOP_RATING_COUNT)
	if err != nil {
		log.Error("Failed to load winners: ", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 KONKURS G'OLIBLARI (TOP 20)\n\n")
	if len(winners) == 0 {
		sb.WriteString("❌ G'oliblar topilmadi")
	}
	for i, winner := range winners {
		sb.WriteString(fmt.Sprintf("%v %v - %d ball\n", rankEmoji(i+1), winner.DisplayName(), winner.Balance))
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), backMarkup(buttons.AdminContestId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminContestCommand) Statistics(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	stats, err := c.stats.Contest(ctx, config.TOP_RATING_COUNT)
	if err != nil {
		log.Error("Failed to load contest stats: ", err)
		return
	}

	status := "⏹ To'xtatilgan"
	if stats.ContestActive {
		status = "✅ Faol"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`📊 KONKURS STATISTIKASI

👥 Jami ishtirokchilar: %d
🎁 Tarqatilgan balllar: %v
📊 O'rtacha ball: %v
🎯 Status: %v
`, stats.TotalParticipants, util.FormatNumber(stats.PointsDistributed), util.FormatFloat(stats.AveragePoints), status))

	if len(stats.TopUsers) > 0 {
		sb.WriteString("\n🏆 Top 5 foydalanuvchi:\n")
		for i, user := range stats.TopUsers {
			if i == 5 {
				break
			}
			sb.WriteString(fmt.Sprintf("%d. %v - %d ball\n", i+1, user.DisplayName(), user.Balance))
		}
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), backMarkup(buttons.AdminContestId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminContestCommand) PromptReset(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.ConfirmResetId, "✅ Ha, nollash"),
				util.CreateDefaultButton(buttons.AdminContestId, "❌ Yo'q"),
			},
		},
	}

	text := `⚠️ BALLARNI NOLLASH

Haqiqatan ham barcha foydalanuvchilarning ballarini nollamoqchimisiz?

❗️ Bu amal qaytarib bo'lmaydi!`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, markup); err != nil {
		log.Error(err)
	}
}

// ConfirmReset zeroes every balance. Referral history is untouched, so
// referral counts survive the reset.
func (c *AdminContestCommand) ConfirmReset(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	text := "✅ Barcha foydalanuvchilarning ballari nollandi!"
	if err := c.us.ResetAllBalances(ctx); err != nil {
		log.Error("Failed to reset balances: ", err)
		text = "❌ Ballarni nollashda xatolik yuz berdi."
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminContestId)); err != nil {
		log.Error(err)
	}
}
