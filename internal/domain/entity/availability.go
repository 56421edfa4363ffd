package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Weekday is one of the seven canonical English day names
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days in calendar order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday accepts only the canonical day names (surrounding spaces ignored).
func ParseWeekday(s string) (Weekday, bool) {
	d := Weekday(strings.TrimSpace(s))
	if d.Index() < 0 {
		return "", false
	}
	return d, true
}

// Index returns 0 for Monday through 6 for Sunday, or -1 for an unknown value.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// WeekdayOf returns the Weekday of a calendar date
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts at Sunday = 0
	return Weekdays[(int(t.Weekday())+6)%7]
}

// AvailabilityWindow is a doctor's recurring working hours for one day of the week.
// StartTime and EndTime hold canonical HH:MM:SS values.
type AvailabilityWindow struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_availabilities_doctor_day" json:"doctor_id"`
	DayOfWeek Weekday   `gorm:"type:varchar(10);not null;uniqueIndex:idx_availabilities_doctor_day" json:"day_of_week"`
	StartTime string    `gorm:"type:char(8);not null" json:"start_time"`
	EndTime   string    `gorm:"type:char(8);not null" json:"end_time"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AvailabilityWindow) TableName() string {
	return "availabilities"
}

// Active reports whether the window is switched on
func (a *AvailabilityWindow) Active() bool {
	return a.IsActive == nil || *a.IsActive
}
