package application

import (
	"github.com/comexhub/comex-go/internal/domain/event"
	"github.com/comexhub/comex-go/internal/repository"
)

type EventService struct {
	Repos *repository.Repos
}

func NewEventService(repos *repository.Repos) *EventService {
	return &EventService{Repos: repos}
}

func (s *EventService) CreateEvent(creatorID uint, input event.CreateEventInput) (*event.Event, error) {
	e := &event.Event{
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		Organizer:   input.Organizer,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   creatorID,
	}
	return e, s.Repos.Event.Create(e)
}

func (s *EventService) ListEvents() ([]event.Event, error) {
	return s.Repos.Event.FindAll()
}

func (s *EventService) GetEventByID(id uint) (*event.Event, error) {
	return s.Repos.Event.FindByID(id)
}

func (s *EventService) UpdateEvent(id uint, input event.UpdateEventInput) (*event.Event, error) {
	e, err := s.Repos.Event.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		e.Title = *input.Title
	}
	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.Venue != nil {
		e.Venue = *input.Venue
	}
	if input.Organizer != nil {
		e.Organizer = *input.Organizer
	}
	if input.StartDate != nil {
		e.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		e.EndDate = *input.EndDate
	}

	return e, s.Repos.Event.Save(e)
}

func (s *EventService) DeleteEvent(id uint) error {
	return s.Repos.Event.Delete(id)
}
