package contestbot

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/config"
	"contestbot/internal/contestbot/buttons"
	"contestbot/internal/contestbot/command"
	"contestbot/internal/contestbot/userstate"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

var log = config.InitLogger()

type TgBot struct {
	token   string
	us      *services.UserService
	rs      *services.ReferralService
	ranking *services.RankingService
	gs      *services.GateService
	as      *services.AdminService
	ss      *services.SettingsService
	subs    *services.SubscriptionService
	bs      *services.BroadcastService
	stats   *services.StatsService
	es      *services.ExportService
}

func NewTgBot(token string, us *services.UserService, rs *services.ReferralService,
	ranking *services.RankingService, gs *services.GateService, as *services.AdminService,
	ss *services.SettingsService, subs *services.SubscriptionService,
	bs *services.BroadcastService, stats *services.StatsService,
	es *services.ExportService) *TgBot {
	return &TgBot{
		token:   token,
		us:      us,
		rs:      rs,
		ranking: ranking,
		gs:      gs,
		as:      as,
		ss:      ss,
		subs:    subs,
		bs:      bs,
		stats:   stats,
		es:      es,
	}
}

func (t *TgBot) StartBot() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := []bot.Option{
		bot.WithDefaultHandler(t.handler),
		// chat_member is not delivered unless asked for explicitly
		bot.WithAllowedUpdates(bot.AllowedUpdates{"message", "callback_query", "chat_member"}),
	}

	tgbot, err := bot.New(t.token, opts...)
	if err != nil {
		log.Fatal("Failed to start bot: ", err)
		return err
	}

	t.gs.Attach(NewBotMembershipChecker(tgbot), NewBotNotifier(tgbot))

	tgbot.Start(ctx)

	return nil
}

func (t *TgBot) handler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil {
		return
	}

	if update.Message != nil {
		t.handleMessage(ctx, b, update.Message)
	}

	if update.CallbackQuery != nil {
		callback := update.CallbackQuery

		t.handleCallback(ctx, b, callback)

		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
		}); err != nil {
			log.Debug("AnswerCallbackQuery: ", err)
		}
	}

	if update.ChatMember != nil {
		t.handleChatMember(ctx, update.ChatMember)
	}
}

func (t *TgBot) handleMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	if msg.Chat.Type != models.ChatTypePrivate {
		return
	}

	text := msg.Text
	chatId := msg.Chat.ID

	t.us.TouchActivity(ctx, chatId)

	if strings.HasPrefix(text, "/start") {
		userstate.ResetState(ctx, chatId)
		command.NewStartCommand(b, t.us, t.gs, t.as).Execute(ctx, msg)
		return
	}

	if text == buttons.JoinContest {
		userstate.ResetState(ctx, chatId)
		command.NewContestInfoCommand(b, t.ss).Execute(ctx, msg)
		return
	}

	if text == buttons.ReferralLink {
		userstate.ResetState(ctx, chatId)
		command.NewReferralLinkCommand(b, t.rs).Execute(ctx, msg)
		return
	}

	if text == buttons.Gifts {
		userstate.ResetState(ctx, chatId)
		command.NewGiftsInfoCommand(b, t.ss).Execute(ctx, msg)
		return
	}

	if text == buttons.Terms {
		userstate.ResetState(ctx, chatId)
		command.NewTermsInfoCommand(b, t.ss).Execute(ctx, msg)
		return
	}

	if text == buttons.MyPoints {
		userstate.ResetState(ctx, chatId)
		command.NewBalanceCommand(b, t.us, t.ranking).Execute(ctx, msg)
		return
	}

	if text == buttons.Rating {
		userstate.ResetState(ctx, chatId)
		command.NewRatingCommand(b, t.ranking).Execute(ctx, msg)
		return
	}

	if text == buttons.AdminPanel {
		userstate.ResetState(ctx, chatId)
		command.NewAdminPanelCommand(b, t.as).Execute(ctx, msg)
		return
	}

	if state := userstate.CurrentState(ctx, chatId); state != userstate.None {
		t.handleState(ctx, state, b, msg)
		return
	}

	if text != "" {
		if _, err := util.SendTextMessage(b, chatId, "❓ Noma'lum buyruq. Iltimos, menyudan birini tanlang."); err != nil {
			log.Error(err)
		}
	}
}

func (t *TgBot) handleState(ctx context.Context, state int, b *bot.Bot, msg *models.Message) {
	if state == userstate.WaitingPhone {
		command.NewPhoneInputCommand(b, t.us, t.as).Execute(ctx, msg)
		return
	}

	// everything below is an admin flow
	if !t.as.IsAdmin(ctx, msg.Chat.ID) {
		userstate.ResetState(ctx, msg.Chat.ID)
		return
	}

	switch state {
	case userstate.ComposeBroadcast:
		command.NewAdminMessagingCommand(b, t.bs, t.us, t.stats).HandleBroadcast(ctx, msg)
	case userstate.EnterSingleTarget:
		command.NewAdminMessagingCommand(b, t.bs, t.us, t.stats).HandleSingleTarget(ctx, msg)
	case userstate.ComposeSingleMessage:
		command.NewAdminMessagingCommand(b, t.bs, t.us, t.stats).HandleSingleMessage(ctx, msg)
	case userstate.EnterSearchQuery:
		command.NewAdminSearchCommand(b, t.us).HandleQuery(ctx, msg)
	case userstate.EnterNewAdminId:
		command.NewAdminAdminsCommand(b, t.as).HandleAdd(ctx, msg)
	case userstate.EnterSubscription:
		command.NewAdminSubscriptionsCommand(b, t.subs).HandleAdd(ctx, msg)
	case userstate.EditContestText, userstate.EditGiftsText, userstate.EditTermsText:
		command.NewAdminTextsCommand(b, t.ss).HandleEdit(ctx, state, msg)
	default:
		log.Error("Unknown state: ", state)
	}
}

func (t *TgBot) handleCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	data := callback.Data

	if data == buttons.CheckSubscriptionsId {
		command.NewCheckSubscriptionsCommand(b, t.us, t.gs, t.as).Execute(ctx, callback)
		return
	}

	if !t.as.IsAdmin(ctx, callback.From.ID) {
		return
	}

	switch data {
	case buttons.AdminPanelId:
		command.NewAdminPanelCommand(b, t.as).Show(ctx, callback)
	case buttons.BackToMenuId:
		command.NewAdminPanelCommand(b, t.as).BackToMenu(ctx, callback)

	case buttons.AdminUsersId:
		command.NewAdminUsersCommand(b, t.us, t.ranking, t.es).Menu(ctx, callback)
	case buttons.UserListId:
		command.NewAdminUsersCommand(b, t.us, t.ranking, t.es).UserList(ctx, callback)
	case buttons.ActiveUsersId:
		command.NewAdminUsersCommand(b, t.us, t.ranking, t.es).ActiveUsers(ctx, callback)
	case buttons.NewUsersId:
		command.NewAdminUsersCommand(b, t.us, t.ranking, t.es).NewUsers(ctx, callback)
	case buttons.ExportUsersId:
		command.NewAdminUsersCommand(b, t.us, t.ranking, t.es).Export(ctx, callback)

	case buttons.AdminStatsId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).Menu(ctx, callback)
	case buttons.StatsTodayId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).Today(ctx, callback)
	case buttons.StatsWeekId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).Period(ctx, callback, 7, "BU HAFTA STATISTIKASI")
	case buttons.StatsMonthId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).Period(ctx, callback, 30, "BU OY STATISTIKASI")
	case buttons.StatsAllId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).AllTime(ctx, callback)
	case buttons.TopReferrersId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).TopReferrers(ctx, callback)
	case buttons.GrowthStatsId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).Growth(ctx, callback)
	case buttons.ExportStatsId:
		command.NewAdminStatsCommand(b, t.stats, t.rs, t.es).Export(ctx, callback)

	case buttons.AdminMessagingId:
		command.NewAdminMessagingCommand(b, t.bs, t.us, t.stats).Menu(ctx, callback)
	case buttons.BroadcastAllId:
		command.NewAdminMessagingCommand(b, t.bs, t.us, t.stats).PromptBroadcast(ctx, callback)
	case buttons.MessageSingleId:
		command.NewAdminMessagingCommand(b, t.bs, t.us, t.stats).PromptSingle(ctx, callback)
	case buttons.MessageStatsId:
		command.NewAdminMessagingCommand(b, t.bs, t.us, t.stats).MessageStats(ctx, callback)

	case buttons.AdminSubscriptionsId:
		command.NewAdminSubscriptionsCommand(b, t.subs).Menu(ctx, callback)
	case buttons.SubscriptionListId:
		command.NewAdminSubscriptionsCommand(b, t.subs).List(ctx, callback)
	case buttons.AddSubscriptionId:
		command.NewAdminSubscriptionsCommand(b, t.subs).PromptAdd(ctx, callback)
	case buttons.RemoveSubscriptionId:
		command.NewAdminSubscriptionsCommand(b, t.subs).PromptRemove(ctx, callback)

	case buttons.AdminContestId:
		command.NewAdminContestCommand(b, t.ss, t.us, t.ranking, t.stats).Menu(ctx, callback)
	case buttons.StartContestId:
		command.NewAdminContestCommand(b, t.ss, t.us, t.ranking, t.stats).Start(ctx, callback)
	case buttons.StopContestId:
		command.NewAdminContestCommand(b, t.ss, t.us, t.ranking, t.stats).Stop(ctx, callback)
	case buttons.ContestWinnersId:
		command.NewAdminContestCommand(b, t.ss, t.us, t.ranking, t.stats).Winners(ctx, callback)
	case buttons.ContestStatisticsId:
		command.NewAdminContestCommand(b, t.ss, t.us, t.ranking, t.stats).Statistics(ctx, callback)
	case buttons.ResetBalancesId:
		command.NewAdminContestCommand(b, t.ss, t.us, t.ranking, t.stats).PromptReset(ctx, callback)
	case buttons.ConfirmResetId:
		command.NewAdminContestCommand(b, t.ss, t.us, t.ranking, t.stats).ConfirmReset(ctx, callback)

	case buttons.AdminTextsId:
		command.NewAdminTextsCommand(b, t.ss).Menu(ctx, callback)
	case buttons.EditContestTextId, buttons.EditGiftsTextId, buttons.EditTermsTextId:
		command.NewAdminTextsCommand(b, t.ss).PromptEdit(ctx, callback)

	case buttons.AdminSearchId:
		command.NewAdminSearchCommand(b, t.us).Prompt(ctx, callback)

	case buttons.AdminAdminsId:
		command.NewAdminAdminsCommand(b, t.as).Menu(ctx, callback)
	case buttons.AdminListId:
		command.NewAdminAdminsCommand(b, t.as).List(ctx, callback)
	case buttons.AddAdminUserId:
		command.NewAdminAdminsCommand(b, t.as).PromptAdd(ctx, callback)
	case buttons.RemoveAdminUserId:
		command.NewAdminAdminsCommand(b, t.as).PromptRemove(ctx, callback)

	default:
		if strings.HasPrefix(data, buttons.DeleteSubPrefix) {
			command.NewAdminSubscriptionsCommand(b, t.subs).Delete(ctx, callback)
			return
		}
		if strings.HasPrefix(data, buttons.RemoveAdminPrefix) {
			command.NewAdminAdminsCommand(b, t.as).Remove(ctx, callback)
			return
		}
		log.Debug("Unhandled callback: ", data)
	}
}

// handleChatMember confirms private-channel join requests once the user
// actually becomes a member.
func (t *TgBot) handleChatMember(ctx context.Context, upd *models.ChatMemberUpdated) {
	channelId := strconv.FormatInt(upd.Chat.ID, 10)
	userId := upd.From.ID

	t.gs.HandleMembershipChange(ctx, channelId, userId, statusFromChatMember(&upd.NewChatMember))
}
