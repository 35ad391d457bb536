package models

import "time"

// Subscription связывает пользователя с тарифным планом абонемента и,
// опционально, тренировочным планом. Создаётся только операцией subscribe
// и после этого не редактируется; дата окончания носит справочный характер,
// по расписанию подписка не закрывается.
type Subscription struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	MembershipID int64     `json:"membershipId"`
	PlanID       *int64    `json:"planId"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
}
