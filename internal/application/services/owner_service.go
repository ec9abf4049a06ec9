package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	apperrors "github.com/Aryaman129/play-nest-nagpur-sub001/pkg/errors"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/pricing"
)

// OwnerDashboard aggregates an owner's turfs, upcoming bookings and revenue
type OwnerDashboard struct {
	Turfs           []*entities.Turf    `json:"turfs"`
	UpcomingCount   int                 `json:"upcoming_count"`
	TodayBookings   []*entities.Booking `json:"today_bookings"`
	MonthRevenue    float64             `json:"month_revenue"`
	MonthRevenueINR string              `json:"month_revenue_display"`
}

// OwnerService serves the turf owner dashboard
type OwnerService struct {
	turfRepo    repositories.TurfRepository
	bookingRepo repositories.BookingRepository
}

// NewOwnerService creates a new owner service
func NewOwnerService(turfRepo repositories.TurfRepository, bookingRepo repositories.BookingRepository) *OwnerService {
	return &OwnerService{
		turfRepo:    turfRepo,
		bookingRepo: bookingRepo,
	}
}

// Dashboard builds the dashboard for an owner. Revenue counts confirmed
// bookings that started this calendar month; cancelled bookings never count.
func (s *OwnerService) Dashboard(ctx context.Context, ownerID string) (*OwnerDashboard, error) {
	turfs, err := s.turfRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	dashboard := &OwnerDashboard{
		Turfs:         turfs,
		TodayBookings: []*entities.Booking{},
	}

	for _, turf := range turfs {
		confirmed, err := s.bookingRepo.ListByTurf(ctx, turf.ID, repositories.BookingFilter{
			Status: entities.BookingStatusConfirmed,
			From:   &monthStart,
		})
		if err != nil {
			return nil, err
		}

		for _, booking := range confirmed {
			dashboard.MonthRevenue += booking.Price
			if !booking.StartTime.Before(now) {
				dashboard.UpcomingCount++
			}
			if !booking.StartTime.Before(dayStart) && booking.StartTime.Before(dayEnd) {
				dashboard.TodayBookings = append(dashboard.TodayBookings, booking)
			}
		}
	}

	dashboard.MonthRevenueINR = pricing.FormatINR(dashboard.MonthRevenue)

	return dashboard, nil
}

// TurfBookings lists bookings for one of the owner's turfs. Owners can only
// see bookings for turfs they own.
func (s *OwnerService) TurfBookings(ctx context.Context, ownerID, turfID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	turf, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		return nil, err
	}

	if turf.OwnerID != ownerID {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("turf %s does not belong to this owner", turfID))
	}

	return s.bookingRepo.ListByTurf(ctx, turfID, filter)
}
