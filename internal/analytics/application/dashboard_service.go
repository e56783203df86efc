package application

import (
	"context"
	"errors"

	analytics "practice-cloud/internal/analytics/domain"
	finapp "practice-cloud/internal/finance/application"
)

// Dashboard is the full metric set rendered by the dashboard for one
// year: the headline numbers plus every chart series.
type Dashboard struct {
	Year              int                          `json:"year"`
	Metrics           analytics.Metrics            `json:"metrics"`
	Series            analytics.Series             `json:"series"`
	CategoryBreakdown map[string]float64           `json:"category_breakdown"`
	SessionMix        analytics.SessionMix         `json:"session_mix"`
	StatusCounts      analytics.StatusCounts       `json:"status_counts"`
	ModalityCounts    analytics.ModalityCounts     `json:"modality_counts"`
	Genders           analytics.GenderDistribution `json:"genders"`
	ProfitComparison  analytics.ProfitComparison   `json:"profit_comparison"`
}

// AnnualReport holds the tables of the printable year report.
type AnnualReport struct {
	Year     int                     `json:"year"`
	Metrics  analytics.Metrics       `json:"metrics"`
	Series   analytics.Series        `json:"series"`
	Receipts analytics.ReceiptsTable `json:"receipts"`
	Balance  analytics.BalanceTable  `json:"balance"`
}

// DashboardService loads the account's records and computes dashboard
// metrics and annual reports. Each call loads a fresh snapshot; the
// aggregations themselves are pure, so two calls over unchanged records
// produce identical output.
type DashboardService struct {
	records  finapp.RecordStore
	settings finapp.Settings
}

// NewDashboardService constructs the service.
func NewDashboardService(records finapp.RecordStore, settings finapp.Settings) (*DashboardService, error) {
	if records == nil {
		return nil, errors.New("dashboard service: nil record store")
	}
	return &DashboardService{records: records, settings: settings}, nil
}

func (s *DashboardService) calculator(ctx context.Context) (*analytics.Calculator, error) {
	sessions, err := s.records.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.records.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.records.ListPatients(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.records.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	serviceTypes, err := s.records.ListServiceTypes(ctx)
	if err != nil {
		return nil, err
	}
	if len(serviceTypes) == 0 {
		serviceTypes = s.settings.ServiceTypeRecords()
	}
	return analytics.NewCalculator(analytics.Dataset{
		Sessions:     sessions,
		Expenses:     expenses,
		Patients:     patients,
		Groups:       groups,
		ServiceTypes: serviceTypes,
		Categories:   s.settings.Categories,
	}), nil
}

// Dashboard computes the dashboard for one year.
func (s *DashboardService) Dashboard(ctx context.Context, year int) (Dashboard, error) {
	calc, err := s.calculator(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Year:              year,
		Metrics:           calc.YearMetrics(year),
		Series:            calc.MonthlySeries(year),
		CategoryBreakdown: calc.CategoryBreakdown(year),
		SessionMix:        calc.SessionMix(year),
		StatusCounts:      calc.StatusCounts(year),
		ModalityCounts:    calc.ModalityCounts(year),
		Genders:           calc.GenderDistribution(),
		ProfitComparison:  calc.ProfitComparison(year),
	}, nil
}

// MonthMetrics computes the metric set for one month.
func (s *DashboardService) MonthMetrics(ctx context.Context, year int, month int) (analytics.Metrics, error) {
	calc, err := s.calculator(ctx)
	if err != nil {
		return analytics.Metrics{}, err
	}
	series := calc.MonthlySeries(year)
	if month < 1 || month > 12 {
		return analytics.Metrics{}, errors.New("dashboard service: month out of range")
	}
	return series.Months[month-1].Metrics, nil
}

// AnnualReport computes the printable report for one year.
func (s *DashboardService) AnnualReport(ctx context.Context, year int) (AnnualReport, error) {
	calc, err := s.calculator(ctx)
	if err != nil {
		return AnnualReport{}, err
	}
	return AnnualReport{
		Year:     year,
		Metrics:  calc.YearMetrics(year),
		Series:   calc.MonthlySeries(year),
		Receipts: calc.PatientReceipts(year),
		Balance:  calc.ExpenseBalance(year),
	}, nil
}
