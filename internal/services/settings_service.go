package services

import (
	"context"
	"errors"

	"contestbot/internal/repositories"
)

const (
	SettingContestInfo   = "contest_info"
	SettingGiftsInfo     = "gifts_info"
	SettingTermsInfo     = "terms_info"
	SettingContestActive = "contest_active"
)

// DefaultTexts seeds the editable blocks on first start.
var DefaultTexts = map[string]string{
	SettingContestInfo: `🔴 **Konkurs haqida**

🎯 Maqsad: Eng ko'p ball to'plash
⏰ Muddat: Aniqlanmagan
🏆 Mukofotlar: Tez orada e'lon qilinadi

📝 Qoidalar:
• Referal orqali do'st taklif qiling (+2 ball)
• Faol bo'ling va g'olib bo'ling!`,
	SettingGiftsInfo: `🎁 **Sovg'alar ro'yxati**

🥇 1-o'rin: 1,000,000 so'm
🥈 2-o'rin: 500,000 so'm
🥉 3-o'rin: 250,000 so'm

🎯 4-10 o'rin: 100,000 so'm
🎁 11-20 o'rin: 50,000 so'm`,
	SettingTermsInfo: `💡 **Konkurs shartlari**

✅ Ro'yxatdan o'tish majburiy
✅ Faqat +998 raqamlar qabul qilinadi
✅ Har bir referal uchun +2 ball
✅ Soxta account yaratish taqiqlanadi

⚠️ Qoidabuzarlik aniqlansa, diskvalifikatsiya qilinadi.`,
}

// SettingStore is implemented by *repositories.SettingRepository.
type SettingStore interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

type SettingsService struct {
	repo SettingStore
}

func NewSettingsService(repo SettingStore) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

// Get returns the stored value, or fallback when the key is absent.
func (s *SettingsService) Get(ctx context.Context, key, fallback string) string {
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Error("Failed to get setting ", key, ": ", err)
		}
		return fallback
	}
	return value
}

func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SettingsService) IsContestActive(ctx context.Context) bool {
	return s.Get(ctx, SettingContestActive, "false") == "true"
}

func (s *SettingsService) SetContestActive(ctx context.Context, active bool) error {
	value := "false"
	if active {
		value = "true"
	}
	return s.repo.Set(ctx, SettingContestActive, value)
}

// SeedDefaults writes the default texts for keys that have no value yet.
func (s *SettingsService) SeedDefaults(ctx context.Context) {
	for key, text := range DefaultTexts {
		if _, err := s.repo.Get(ctx, key); errors.Is(err, repositories.ErrNotFound) {
			if err := s.repo.Set(ctx, key, text); err != nil {
				log.Error("Failed to seed setting ", key, ": ", err)
			}
		}
	}
}
