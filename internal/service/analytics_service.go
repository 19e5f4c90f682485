package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"time"
)

// DashboardStats is the headline admin overview.
type DashboardStats struct {
	TotalMembers   int64   `json:"totalMembers"`
	ActiveMembers  int64   `json:"activeMembers"`
	ExpiredMembers int64   `json:"expiredMembers"`
	TotalTrainers  int64   `json:"totalTrainers"`
	MonthlyIncome  float64 `json:"monthlyIncome"`
}

// RevenueAnalytics breaks down successful payments over a period.
type RevenueAnalytics struct {
	Total    float64            `json:"total"`
	ByMethod map[string]float64 `json:"byMethod"`
	Count    int                `json:"count"`
}

// DailyCount is a single point in a per-day trend.
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// AttendanceAnalytics is the period total plus the 30-day daily trend.
type AttendanceAnalytics struct {
	Total int64        `json:"total"`
	Daily []DailyCount `json:"daily"`
}

// MemberAnalytics splits the member base by expiry.
type MemberAnalytics struct {
	Active  int64 `json:"active"`
	Expired int64 `json:"expired"`
	Total   int64 `json:"total"`
}

// Analytics is the full admin analytics payload for one period.
type Analytics struct {
	Revenue    RevenueAnalytics    `json:"revenue"`
	Attendance AttendanceAnalytics `json:"attendance"`
	Bookings   struct {
		Total int64 `json:"total"`
	} `json:"bookings"`
	Members MemberAnalytics `json:"members"`
	Period  string          `json:"period"`
}

type AnalyticsService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	// Analytics aggregates revenue, attendance, bookings and membership over
	// the period: "week" is the trailing 7 days, "month" starts at the first
	// of the current month, "year" at January 1. Anything else means month.
	Analytics(ctx context.Context, period string) (*Analytics, error)
}

type analyticsService struct {
	memberRepo     repository.MemberRepository
	userRepo       repository.UserRepository
	paymentRepo    repository.PaymentRepository
	attendanceRepo repository.AttendanceRepository
	bookingRepo    repository.BookingRepository
}

func NewAnalyticsService(memberRepo repository.MemberRepository, userRepo repository.UserRepository, paymentRepo repository.PaymentRepository, attendanceRepo repository.AttendanceRepository, bookingRepo repository.BookingRepository) AnalyticsService {
	return &analyticsService{
		memberRepo:     memberRepo,
		userRepo:       userRepo,
		paymentRepo:    paymentRepo,
		attendanceRepo: attendanceRepo,
		bookingRepo:    bookingRepo,
	}
}

func (s *analyticsService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()

	total, err := s.memberRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.memberRepo.CountActive(ctx, now)
	if err != nil {
		return nil, err
	}
	trainers, err := s.userRepo.CountByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListSuccessfulSince(ctx, nil)
	if err != nil {
		return nil, err
	}
	var income float64
	for _, p := range payments {
		income += p.Amount
	}

	return &DashboardStats{
		TotalMembers:   total,
		ActiveMembers:  active,
		ExpiredMembers: total - active,
		TotalTrainers:  trainers,
		MonthlyIncome:  income,
	}, nil
}

func (s *analyticsService) Analytics(ctx context.Context, period string) (*Analytics, error) {
	now := time.Now()
	start := periodStart(period, now)
	if period != "week" && period != "year" {
		period = "month"
	}

	payments, err := s.paymentRepo.ListSuccessfulSince(ctx, &start)
	if err != nil {
		return nil, err
	}
	revenue := RevenueAnalytics{ByMethod: make(map[string]float64)}
	for _, p := range payments {
		revenue.Total += p.Amount
		revenue.ByMethod[string(p.Method)] += p.Amount
	}
	revenue.Count = len(payments)

	attendanceTotal, err := s.attendanceRepo.CountSince(ctx, start)
	if err != nil {
		return nil, err
	}
	daily, err := s.dailyAttendance(ctx, now)
	if err != nil {
		return nil, err
	}

	bookingTotal, err := s.bookingRepo.CountActiveSince(ctx, start)
	if err != nil {
		return nil, err
	}

	active, err := s.memberRepo.CountActive(ctx, now)
	if err != nil {
		return nil, err
	}
	expired, err := s.memberRepo.CountExpired(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &Analytics{
		Revenue:    revenue,
		Attendance: AttendanceAnalytics{Total: attendanceTotal, Daily: daily},
		Members:    MemberAnalytics{Active: active, Expired: expired, Total: active + expired},
		Period:     period,
	}
	result.Bookings.Total = bookingTotal
	return result, nil
}

// dailyAttendance builds the check-in trend for the trailing 30 days.
func (s *analyticsService) dailyAttendance(ctx context.Context, now time.Time) ([]DailyCount, error) {
	daily := make([]DailyCount, 0, 30)
	for i := 29; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		to := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), day.Location())

		count, err := s.attendanceRepo.CountBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		daily = append(daily, DailyCount{Date: day.Format("2006-01-02"), Count: count})
	}
	return daily, nil
}

func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7)
	case "year":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}
