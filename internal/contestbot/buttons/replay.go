package buttons

const (
	//main menu
	JoinContest  = "🔴 Konkursda qatnashish"
	ReferralLink = "👆 Referal link"
	Gifts        = "🎁 Sovg'alar"
	MyPoints     = "👤 Ballarim"
	Rating       = "📊 Reyting"
	Terms        = "💡 Shartlar"

	//admin entry
	AdminPanel = "🗄 Admin paneli"

	//registration
	SharePhone = "📱 Raqamni ulashish"
)
