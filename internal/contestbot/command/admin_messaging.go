package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type AdminMessagingCommand struct {
	bt    *bot.Bot
	bs    *services.BroadcastService
	us    *services.UserService
	stats *services.StatsService
}

func NewAdminMessagingCommand(b *bot.Bot, bs *services.BroadcastService, us *services.UserService, stats *services.StatsService) *AdminMessagingCommand {
	return &AdminMessagingCommand{
		bt:    b,
		bs:    bs,
		us:    us,
		stats: stats,
	}
}

func (c *AdminMessagingCommand) Menu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.BroadcastAllId, "📢 Hammaga yuborish"),
				util.CreateDefaultButton(buttons.MessageSingleId, "👤 Bitta foydalanuvchi"),
			},
			{
				util.CreateDefaultButton(buttons.MessageStatsId, "📊 Yuborilgan xabarlar"),
			},
			{
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	text := "💬 Xabar yuborish\n\nKimga xabar yubormoqchisiz?"
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, markup); err != nil {
		log.Error(err)
	}
}

func (c *AdminMessagingCommand) PromptBroadcast(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if err := userstate.SetState(ctx, callback.From.ID, userstate.ComposeBroadcast); err != nil {
		log.Error("Failed to set state: ", err)
	}

	text := `📢 HAMMAGA XABAR YUBORISH

Yubormoqchi bo'lgan xabaringizni yozing:

⚠️ Bu xabar barcha foydalanuvchilarga yuboriladi!`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminMessagingId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminMessagingCommand) PromptSingle(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if err := userstate.SetState(ctx, callback.From.ID, userstate.EnterSingleTarget); err != nil {
		log.Error("Failed to set state: ", err)
	}

	text := `👤 BITTA FOYDALANUVCHIGA XABAR

Foydalanuvchi ID sini kiriting:

Masalan: 123456789`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminMessagingId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminMessagingCommand) MessageStats(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	stats, err := c.stats.AllTime(ctx)
	if err != nil {
		log.Error("Failed to load message stats: ", err)
		return
	}

	perUser := 0
	if stats.TotalUsers > 0 {
		perUser = stats.TotalMessages / stats.TotalUsers
	}

	text := fmt.Sprintf(`📊 XABAR STATISTIKASI

💬 Jami yuborilgan xabarlar: %d
👥 Jami foydalanuvchilar: %d
📈 O'rtacha: %d xabar/foydalanuvchi`, stats.TotalMessages, stats.TotalUsers, perUser)

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminMessagingId)); err != nil {
		log.Error(err)
	}
}

// HandleBroadcast runs the fan-out and keeps the admin updated through an
// editable progress message.
func (c *AdminMessagingCommand) HandleBroadcast(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID
	userstate.ResetState(ctx, chatId)

	progress, err := util.SendTextMessage(c.bt, chatId, "📤 Xabar yuborilmoqda...")
	if err != nil {
		return
	}

	result, err := c.bs.SendToAll(ctx, &botSender{b: c.bt}, msg.Text, func(processed, total int) {
		text := fmt.Sprintf(`📤 Xabar yuborilmoqda...

📊 Jami: %d
📈 Jarayon: %.1f%%`, total, float64(processed)/float64(total)*100)
		if err := util.EditMessageText(ctx, c.bt, chatId, progress.ID, text, nil); err != nil {
			log.Debug(err)
		}
	})
	if err != nil {
		log.Error("Broadcast failed: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	success := 0.0
	if result.Total > 0 {
		success = float64(result.Sent) / float64(result.Total) * 100
	}

	final := fmt.Sprintf(`✅ XABAR YUBORISH YAKUNLANDI

📊 Jami foydalanuvchilar: %d
✅ Muvaffaqiyatli yuborildi: %d
❌ Xatolik: %d
📈 Muvaffaqiyat: %.1f%%`, result.Total, result.Sent, result.Failed, success)

	if err := util.EditMessageText(ctx, c.bt, chatId, progress.ID, final, backMarkup(buttons.AdminPanelId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminMessagingCommand) HandleSingleTarget(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	targetId, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		if _, err := util.SendTextMessage(c.bt, chatId, "❌ Noto'g'ri ID format! Faqat raqamlar kiriting."); err != nil {
			log.Error(err)
		}
		return
	}

	if _, err := c.us.GetById(ctx, targetId); err != nil {
		if _, err := util.SendTextMessage(c.bt, chatId, fmt.Sprintf("❌ ID: %d foydalanuvchi topilmadi!", targetId)); err != nil {
			log.Error(err)
		}
		return
	}

	if err := userstate.SetPayload(ctx, chatId, strconv.FormatInt(targetId, 10)); err != nil {
		log.Error("Failed to store target: ", err)
		return
	}
	if err := userstate.SetState(ctx, chatId, userstate.ComposeSingleMessage); err != nil {
		log.Error("Failed to set state: ", err)
		return
	}

	if _, err := util.SendTextMessage(c.bt, chatId, "✍️ Endi yubormoqchi bo'lgan xabaringizni yozing:"); err != nil {
		log.Error(err)
	}
}

func (c *AdminMessagingCommand) HandleSingleMessage(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	payload, err := userstate.Payload(ctx, chatId)
	if err != nil || payload == "" {
		log.Error("Missing single-message target: ", err)
		userstate.ResetState(ctx, chatId)
		return
	}

	targetId, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		userstate.ResetState(ctx, chatId)
		return
	}

	userstate.ResetState(ctx, chatId)

	if err := c.bs.SendTo(ctx, &botSender{b: c.bt}, targetId, msg.Text); err != nil {
		if _, err := util.SendTextMessage(c.bt, chatId, fmt.Sprintf("❌ ID: %d ga xabar yuborib bo'lmadi.", targetId)); err != nil {
			log.Error(err)
		}
		return
	}

	if _, err := util.SendTextMessage(c.bt, chatId, fmt.Sprintf("✅ Xabar ID: %d ga yuborildi!", targetId)); err != nil {
		log.Error(err)
	}
}

type botSender struct {
	b *bot.Bot
}

func (s *botSender) Send(ctx context.Context, chatId int64, text string) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatId,
		Text:      text,
		ParseMode: "HTML",
	})
	return err
}
