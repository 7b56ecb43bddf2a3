package event

import "time"

type CreateEventInput struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Organizer   string    `json:"organizer"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	Organizer   *string    `json:"organizer"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}
