package models

import "time"

// WaitlistEntry is one early-access signup. A given email is recorded
// exactly once; re-submissions are detected, never duplicated.
type WaitlistEntry struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Email      string    `json:"email" gorm:"column:email;unique"`
	Occupation string    `json:"occupation"`
	Platform   string    `json:"platform"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// Subscriber is the simplified email-only capture from the landing page.
type Subscriber struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `json:"email" gorm:"column:email;unique"`
	CreatedAt time.Time `json:"created_at"`
}
