package command

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"contestbot/internal/contestbot/buttons"
	appModels "contestbot/internal/models"
	"contestbot/internal/util"
)

func mainMenuMarkup(isAdmin bool) *models.ReplyKeyboardMarkup {
	keyboard := [][]models.KeyboardButton{
		{{Text: buttons.JoinContest}},
		{{Text: buttons.ReferralLink}, {Text: buttons.Gifts}},
		{{Text: buttons.MyPoints}, {Text: buttons.Rating}},
		{{Text: buttons.Terms}},
	}

	if isAdmin {
		keyboard = append(keyboard, []models.KeyboardButton{{Text: buttons.AdminPanel}})
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:       keyboard,
		ResizeKeyboard: true,
	}
}

// subscriptionWallMarkup links every missing channel and closes with the
// recheck button.
func subscriptionWallMarkup(missing []appModels.MandatorySubscription) *models.InlineKeyboardMarkup {
	keyboard := make([][]models.InlineKeyboardButton, 0, len(missing)+1)

	for _, sub := range missing {
		var url string
		if sub.IsPrivate && sub.InviteLink.Valid {
			url = sub.InviteLink.String
		} else if sub.ChannelHandle.Valid && sub.ChannelHandle.String != "" {
			url = "https://t.me/" + sub.ChannelHandle.String
		} else {
			continue
		}
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			util.CreateUrlButton(url, fmt.Sprintf("📢 %v", sub.DisplayTitle())),
		})
	}

	keyboard = append(keyboard, []models.InlineKeyboardButton{
		util.CreateDefaultButton(buttons.CheckSubscriptionsId, buttons.CheckSubscriptionsText),
	})

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: keyboard,
	}
}

func backMarkup(idButton string) *models.InlineKeyboardMarkup {
	return util.CreateInlineMarkup(1, util.CreateDefaultButton(idButton, buttons.BackText))
}
