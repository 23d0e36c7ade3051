package buttons

const (
	//subscription wall
	CheckSubscriptionsId   = "CHECK_SUBSCRIPTIONS"
	CheckSubscriptionsText = "✅ А'zo bo'ldim"

	//admin panel sections
	AdminPanelId         = "ADMIN_PANEL"
	AdminUsersId         = "ADMIN_USERS"
	AdminStatsId         = "ADMIN_STATS"
	AdminMessagingId     = "ADMIN_MESSAGING"
	AdminSubscriptionsId = "ADMIN_SUBSCRIPTIONS"
	AdminContestId       = "ADMIN_CONTEST"
	AdminTextsId         = "ADMIN_TEXTS"
	AdminSearchId        = "ADMIN_SEARCH"
	AdminAdminsId        = "ADMIN_ADMINS"
	BackToMenuId         = "BACK_TO_MENU"

	//user management
	UserListId    = "USER_LIST"
	ActiveUsersId = "ACTIVE_USERS"
	NewUsersId    = "NEW_USERS"
	ExportUsersId = "EXPORT_USERS"

	//statistics
	StatsTodayId   = "STATS_TODAY"
	StatsWeekId    = "STATS_WEEK"
	StatsMonthId   = "STATS_MONTH"
	StatsAllId     = "STATS_ALL"
	TopReferrersId = "TOP_REFERRERS"
	GrowthStatsId  = "GROWTH_STATS"
	ExportStatsId  = "EXPORT_STATS"

	//messaging
	BroadcastAllId  = "BROADCAST_ALL"
	MessageSingleId = "MESSAGE_SINGLE"
	MessageStatsId  = "MESSAGE_STATS"

	//subscriptions
	SubscriptionListId   = "SUBSCRIPTION_LIST"
	AddSubscriptionId    = "ADD_SUBSCRIPTION"
	RemoveSubscriptionId = "REMOVE_SUBSCRIPTION"
	DeleteSubPrefix      = "DELETE_SUB:"

	//contest management
	StartContestId      = "START_CONTEST"
	StopContestId       = "STOP_CONTEST"
	ResetBalancesId     = "RESET_BALANCES"
	ConfirmResetId      = "CONFIRM_RESET_BALANCES"
	ContestWinnersId    = "CONTEST_WINNERS"
	ContestStatisticsId = "CONTEST_STATISTICS"

	//text editing
	EditContestTextId = "EDIT_CONTEST_TEXT"
	EditGiftsTextId   = "EDIT_GIFTS_TEXT"
	EditTermsTextId   = "EDIT_TERMS_TEXT"

	//admin management
	AdminListId       = "ADMIN_LIST"
	AddAdminUserId    = "ADD_ADMIN_USER"
	RemoveAdminUserId = "REMOVE_ADMIN_USER"
	RemoveAdminPrefix = "REMOVE_ADMIN:"

	//shared
	BackText = "🔙 Orqaga"
)
