package models

import (
	"database/sql"
	"strconv"
	"time"
)

type User struct {
	Id           int64          `db:"id" json:"id"`
	Username     sql.NullString `db:"username" json:"username"`
	FirstName    sql.NullString `db:"first_name" json:"first_name"`
	LastName     sql.NullString `db:"last_name" json:"last_name"`
	PhoneNumber  sql.NullString `db:"phone_number" json:"phone_number"`
	Balance      int64          `db:"balance" json:"balance"`
	ReferrerId   sql.NullInt64  `db:"referrer_id" json:"referrer_id"`
	RegisteredAt time.Time      `db:"registered_at" json:"registered_at"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	LastActiveAt time.Time      `db:"last_active_at" json:"last_active_at"`
}

// DisplayName picks the first usable name part, falling back to the id.
func (u *User) DisplayName() string {
	name := ""
	if u.FirstName.Valid && u.FirstName.String != "" {
		name = u.FirstName.String
		if u.LastName.Valid && u.LastName.String != "" {
			name += " " + u.LastName.String
		}
		return name
	}
	if u.Username.Valid && u.Username.String != "" {
		return u.Username.String
	}
	return "User " + strconv.FormatInt(u.Id, 10)
}

type Admin struct {
	UserId    int64          `db:"user_id" json:"user_id"`
	AddedBy   sql.NullInt64  `db:"added_by" json:"added_by"`
	AddedAt   time.Time      `db:"added_at" json:"added_at"`
	FirstName sql.NullString `db:"first_name" json:"first_name"`
	LastName  sql.NullString `db:"last_name" json:"last_name"`
	Username  sql.NullString `db:"username" json:"username"`
}

type MandatorySubscription struct {
	Id            int64          `db:"id" json:"id"`
	ChannelId     string         `db:"channel_id" json:"channel_id"`
	ChannelHandle sql.NullString `db:"channel_handle" json:"channel_handle"`
	Title         sql.NullString `db:"title" json:"title"`
	IsPrivate     bool           `db:"is_private" json:"is_private"`
	InviteLink    sql.NullString `db:"invite_link" json:"invite_link"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	AddedAt       time.Time      `db:"added_at" json:"added_at"`
}

func (s *MandatorySubscription) DisplayTitle() string {
	if s.Title.Valid && s.Title.String != "" {
		return s.Title.String
	}
	if s.ChannelHandle.Valid && s.ChannelHandle.String != "" {
		return "@" + s.ChannelHandle.String
	}
	return s.ChannelId
}

type Referral struct {
	Id          sql.NullInt64 `db:"id" json:"id"`
	ReferrerId  int64         `db:"referrer_id" json:"referrer_id"`
	ReferredId  int64         `db:"referred_id" json:"referred_id"`
	BonusAmount int64         `db:"bonus_amount" json:"bonus_amount"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

type ReferrerCount struct {
	UserId    int64          `db:"referrer_id" json:"user_id"`
	FirstName sql.NullString `db:"first_name" json:"first_name"`
	LastName  sql.NullString `db:"last_name" json:"last_name"`
	Username  sql.NullString `db:"username" json:"username"`
	Referrals int            `db:"referral_count" json:"referral_count"`
}

func (r *ReferrerCount) DisplayName() string {
	u := User{
		Id:        r.UserId,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
	}
	return u.DisplayName()
}

type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type DailyStat struct {
	Day           time.Time `db:"day" json:"day"`
	NewUsers      int       `db:"new_users" json:"new_users"`
	ActiveUsers   int       `db:"active_users" json:"active_users"`
	MessagesSent  int       `db:"messages_sent" json:"messages_sent"`
	ReferralsMade int       `db:"referrals_made" json:"referrals_made"`
}

// StatDelta is an additive bump applied to today's daily_stats row.
// ActiveUsers is a snapshot, not an increment: the last write for a day wins.
type StatDelta struct {
	NewUsers      int
	ActiveUsers   int
	MessagesSent  int
	ReferralsMade int
}

type PeriodStats struct {
	NewUsers       int `db:"new_users"`
	MessagesSent   int `db:"messages_sent"`
	ReferralsMade  int `db:"referrals_made"`
	AvgActiveUsers int `db:"avg_active_users"`
}

type ExportRow struct {
	Rank          int            `db:"rank"`
	UserId        int64          `db:"id"`
	Username      sql.NullString `db:"username"`
	FirstName     sql.NullString `db:"first_name"`
	LastName      sql.NullString `db:"last_name"`
	PhoneNumber   sql.NullString `db:"phone_number"`
	Balance       int64          `db:"balance"`
	RegisteredAt  time.Time      `db:"registered_at"`
	LastActiveAt  time.Time      `db:"last_active_at"`
	ReferralCount int            `db:"referral_count"`
	ReferrerName  sql.NullString `db:"referrer_name"`
}
