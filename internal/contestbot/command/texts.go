package command

const (
	msgStartWelcome = `👋 Salom! Konkursga xush kelibsiz!

🚀 Loyihada ishtirok etish uchun quyidagi kanallarga azo boʼling.
Keyin ✅ А'zo bo'ldim tugmasini bosing.
⚠️ Yopiq kanallarga ulanish soʼrovini yuborishingiz kifoya.`

	msgNotSubscribed = `❌ Siz hali barcha kanallarga obuna bo'lmagansiz!

🚀 Loyihada ishtirok etish uchun quyidagi kanallarga azo boʼling.
Keyin ✅ А'zo bo'ldim tugmasini bosing.
⚠️ Yopiq kanallarga ulanish soʼrovini yuborishingiz kifoya.`

	msgPhoneRequest = `📱 Iltimos, telefon raqamingizni yuboring.
Faqat +998 bilan boshlanadigan raqamlar qabul qilinadi.

Masalan: +998901234567`

	msgInvalidPhone = `❌ Kechirasiz, faqat O'zbekiston raqamlarini qabul qilamiz.
Iltimos, +998 bilan boshlanadigan raqam kiriting.`

	msgRegistrationSuccess = `✅ Tabriklaymiz! Siz muvaffaqiyatli ro'yxatdan o'tdingiz!
🎁 Sizga 2 ball berildi!

Endi botning barcha imkoniyatlaridan foydalanishingiz mumkin.`

	msgMainMenu = `🏠 Bosh menyu

Quyidagi tugmalardan birini tanlang:`

	msgRatingHeader = `📊 TOP 20 REYTING

🏆 Eng faol foydalanuvchilar:`

	msgAdminNotAllowed = "❌ Sizda admin huquqlari yo'q!"

	msgGenericError = "❌ Xatolik yuz berdi. Iltimos, qayta urinib ko'ring."
)
