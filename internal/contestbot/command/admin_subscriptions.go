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

type AdminSubscriptionsCommand struct {
	bt   *bot.Bot
	subs *services.SubscriptionService
}

func NewAdminSubscriptionsCommand(b *bot.Bot, subs *services.SubscriptionService) *AdminSubscriptionsCommand {
	return &AdminSubscriptionsCommand{
		bt:   b,
		subs: subs,
	}
}

func (c *AdminSubscriptionsCommand) Menu(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				util.CreateDefaultButton(buttons.SubscriptionListId, "📋 Obunalar ro'yxati"),
				util.CreateDefaultButton(buttons.AddSubscriptionId, "➕ Qo'shish"),
			},
			{
				util.CreateDefaultButton(buttons.RemoveSubscriptionId, "🗑 O'chirish"),
			},
			{
				util.CreateDefaultButton(buttons.AdminPanelId, buttons.BackText),
			},
		},
	}

	text := "📢 Majburiy obunalar boshqaruvi"
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, markup); err != nil {
		log.Error(err)
	}
}

func (c *AdminSubscriptionsCommand) List(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	subs, err := c.subs.ListActive(ctx)
	if err != nil {
		log.Error("Failed to list subscriptions: ", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 MAJBURIY OBUNALAR RO'YXATI\n\n")
	if len(subs) == 0 {
		sb.WriteString("❌ Hech qanday majburiy obuna yo'q")
	}
	for i, sub := range subs {
		typeText := "🔓 Ochiq kanal"
		if sub.IsPrivate {
			typeText = "🔒 Yopiq kanal"
		}
		sb.WriteString(fmt.Sprintf("%d. %v\n   %v\n", i+1, sub.DisplayTitle(), typeText))
		if sub.ChannelHandle.Valid {
			sb.WriteString(fmt.Sprintf("   @%v\n", sub.ChannelHandle.String))
		}
		sb.WriteString(fmt.Sprintf("   ID: %d\n\n", sub.Id))
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, sb.String(), backMarkup(buttons.AdminSubscriptionsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminSubscriptionsCommand) PromptAdd(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	if err := userstate.SetState(ctx, callback.From.ID, userstate.EnterSubscription); err != nil {
		log.Error("Failed to set state: ", err)
	}

	text := `➕ MAJBURIY OBUNA QO'SHISH

Kanal yoki guruh ma'lumotlarini quyidagi formatda yuboring:

Ochiq kanal uchun:
@kanalusername Kanal nomi

Yopiq kanal uchun:
https://t.me/+ABC123... Kanal nomi

Misol: @myofficial My Official Channel`
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminSubscriptionsId)); err != nil {
		log.Error(err)
	}
}

func (c *AdminSubscriptionsCommand) HandleAdd(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID
	userstate.ResetState(ctx, chatId)

	parts := strings.SplitN(strings.TrimSpace(msg.Text), " ", 2)
	if len(parts) < 2 {
		if _, err := util.SendTextMessage(c.bt, chatId, "❌ Noto'g'ri format! Misol: @channel Channel Name yoki https://t.me/+link Channel Name"); err != nil {
			log.Error(err)
		}
		return
	}

	channelInput := parts[0]
	title := strings.TrimSpace(parts[1])

	var sub *appSubscription
	switch {
	case strings.HasPrefix(channelInput, "@"):
		saved, err := c.subs.AddPublic(ctx, channelInput, title)
		if err != nil {
			log.Error("Failed to add subscription: ", err)
			if _, err := util.SendTextMessage(c.bt, chatId, "❌ Obunani qo'shishda xatolik yuz berdi."); err != nil {
				log.Error(err)
			}
			return
		}
		sub = &appSubscription{channelId: saved.ChannelId, private: false}
	case strings.HasPrefix(channelInput, "https://t.me/+"):
		saved, err := c.subs.AddPrivate(ctx, channelInput, title)
		if err != nil {
			log.Error("Failed to add subscription: ", err)
			if _, err := util.SendTextMessage(c.bt, chatId, "❌ Obunani qo'shishda xatolik yuz berdi."); err != nil {
				log.Error(err)
			}
			return
		}
		sub = &appSubscription{channelId: saved.ChannelId, private: true}
	default:
		if _, err := util.SendTextMessage(c.bt, chatId, "❌ Noto'g'ri format! @ bilan boshlaning yoki https://t.me/+ havola ishlating."); err != nil {
			log.Error(err)
		}
		return
	}

	typeText := "Ochiq"
	if sub.private {
		typeText = "Yopiq"
	}
	text := fmt.Sprintf(`✅ Majburiy obuna muvaffaqiyatli qo'shildi!

📢 Kanal: %v
🔗 ID: %v
🔒 Turi: %v`, title, sub.channelId, typeText)

	if _, err := util.SendTextMessage(c.bt, chatId, text); err != nil {
		log.Error(err)
	}
}

type appSubscription struct {
	channelId string
	private   bool
}

func (c *AdminSubscriptionsCommand) PromptRemove(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	subs, err := c.subs.ListActive(ctx)
	if err != nil {
		log.Error("Failed to list subscriptions: ", err)
		return
	}

	if len(subs) == 0 {
		if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, "❌ O'chirish uchun obuna yo'q!", backMarkup(buttons.AdminSubscriptionsId)); err != nil {
			log.Error(err)
		}
		return
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(subs)+1)
	for _, sub := range subs {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			util.CreateDefaultButton(
				fmt.Sprintf("%v%d", buttons.DeleteSubPrefix, sub.Id),
				fmt.Sprintf("🗑 %v", sub.DisplayTitle()),
			),
		})
	}
	keyboard = append(keyboard, []models.InlineKeyboardButton{
		util.CreateDefaultButton(buttons.AdminSubscriptionsId, buttons.BackText),
	})

	text := "🗑 OBUNANI O'CHIRISH\n\nO'chirish uchun obunani tanlang:"
	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}); err != nil {
		log.Error(err)
	}
}

func (c *AdminSubscriptionsCommand) Delete(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.bt, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	idStr := strings.TrimPrefix(callback.Data, buttons.DeleteSubPrefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Error("Bad subscription id: ", callback.Data)
		return
	}

	text := "✅ Majburiy obuna muvaffaqiyatli o'chirildi!"
	if err := c.subs.Remove(ctx, id); err != nil {
		log.Error("Failed to remove subscription: ", err)
		text = "❌ Obunani o'chirishda xatolik yuz berdi."
	}

	if err := util.EditMessageText(ctx, c.bt, msg.Chat.ID, msg.ID, text, backMarkup(buttons.AdminSubscriptionsId)); err != nil {
		log.Error(err)
	}
}
