package holiday

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.Repository
	auditor     audit.Recorder
}

func NewHolidayService(holidayRepo holiday.Repository, auditor audit.Recorder) holiday.Service {
	return &HolidayServiceImpl{
		holidayRepo: holidayRepo,
		auditor:     auditor,
	}
}

// Create implements holiday.Service. Duplicate dates are rejected by the
// store's unique constraint.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.record(ctx, "holiday.create", created.ID, created.Name)

	return holiday.NewHolidayResponse(created), nil
}

// List implements holiday.Service.
func (s *HolidayServiceImpl) List(ctx context.Context, year *int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(h))
	}

	return responses, nil
}

// Delete implements holiday.Service.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, "holiday.delete", id, "")

	return nil
}

func (s *HolidayServiceImpl) record(ctx context.Context, action, entityID, detail string) {
	entry := audit.Log{
		Action:   action,
		Entity:   "holiday",
		EntityID: &entityID,
	}
	if detail != "" {
		entry.Detail = &detail
	}
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if v, ok := claims["user_id"].(string); ok && v != "" {
			entry.ActorID = &v
		}
	}
	s.auditor.Record(ctx, entry)
}
