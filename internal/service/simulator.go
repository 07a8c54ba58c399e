// Package service implements the application use cases on top of the
// domain model and the ports.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/tax"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/simulator")

// SimulatorService runs the public tax simulators. The computations are
// pure; the service adds tracing, metrics and input validation.
type SimulatorService struct {
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewSimulatorService creates the simulator service.
func NewSimulatorService(metrics *observability.Metrics, logger *zap.Logger) *SimulatorService {
	return &SimulatorService{metrics: metrics, logger: logger}
}

// SimulateIncomeTax runs the progressive income tax simulator.
func (s *SimulatorService) SimulateIncomeTax(ctx context.Context, req *domain.IncomeTaxRequest) (*domain.IncomeTaxResult, error) {
	_, span := tracer.Start(ctx, "Simulator.IncomeTax")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("simulator_income_tax", time.Since(start)) }()

	shares := tax.FamilialShares(req.Married, req.Children, req.Disability)
	amount, err := tax.ProgressiveIncomeTax(req.TaxableIncome, shares)
	if err != nil {
		if errors.Is(err, tax.ErrZeroShares) {
			return nil, &domain.ErrValidation{Field: "shares", Message: "household must have at least one share"}
		}
		return nil, err
	}

	result := &domain.IncomeTaxResult{
		Shares: shares,
		Tax:    amount,
	}
	if req.TaxableIncome > 0 {
		result.EffectiveRate = amount / req.TaxableIncome
	}

	s.metrics.IncrSimulatorRun("income_tax")
	return result, nil
}

// SimulateDonation runs the donation duties simulator.
func (s *SimulatorService) SimulateDonation(ctx context.Context, req *domain.DonationRequest) (*domain.DonationResult, error) {
	_, span := tracer.Start(ctx, "Simulator.Donation")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("simulator_donation", time.Since(start)) }()

	rel, err := tax.ParseRelationship(req.Relationship)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "relationship", Message: err.Error()}
	}
	if req.PreviousAbatementUsed < 0 {
		return nil, &domain.ErrValidation{Field: "previous_abatement_used", Message: "must not be negative"}
	}

	out := tax.DonationDuties(req.Amount, rel, req.PreviousAbatementUsed)

	s.metrics.IncrSimulatorRun("donation")
	return &domain.DonationResult{
		TaxableAmount: out.TaxableAmount,
		Tax:           out.Tax,
		AbatementUsed: out.AbatementUsed,
	}, nil
}

// SimulateRealEstateGains runs the real-estate detention abatement simulator.
func (s *SimulatorService) SimulateRealEstateGains(ctx context.Context, req *domain.RealEstateGainsRequest) (*domain.RealEstateGainsResult, error) {
	_, span := tracer.Start(ctx, "Simulator.RealEstateGains")
	defer span.End()

	if req.DetentionYears < 0 {
		return nil, &domain.ErrValidation{Field: "detention_years", Message: "must not be negative"}
	}

	ir, social := tax.RealEstateAbatements(req.DetentionYears)

	s.metrics.IncrSimulatorRun("real_estate_gains")
	return &domain.RealEstateGainsResult{
		IRAbatement:     ir,
		SocialAbatement: social,
	}, nil
}

// SimulateSecuritiesGains runs the securities detention abatement simulator.
func (s *SimulatorService) SimulateSecuritiesGains(ctx context.Context, req *domain.SecuritiesGainsRequest) (*domain.SecuritiesGainsResult, error) {
	_, span := tracer.Start(ctx, "Simulator.SecuritiesGains")
	defer span.End()

	if req.DetentionYears < 0 {
		return nil, &domain.ErrValidation{Field: "detention_years", Message: "must not be negative"}
	}

	s.metrics.IncrSimulatorRun("securities_gains")
	return &domain.SecuritiesGainsResult{
		Abatement: tax.SecuritiesAbatement(req.DetentionYears),
	}, nil
}

// SimulateBareOwnership runs the split-ownership valuation simulator.
func (s *SimulatorService) SimulateBareOwnership(ctx context.Context, req *domain.BareOwnershipRequest) (*domain.BareOwnershipResult, error) {
	_, span := tracer.Start(ctx, "Simulator.BareOwnership")
	defer span.End()

	if req.FullValue < 0 {
		return nil, &domain.ErrValidation{Field: "full_value", Message: "must not be negative"}
	}
	if req.UsufructuaryAge < 0 {
		return nil, &domain.ErrValidation{Field: "usufructuary_age", Message: "must not be negative"}
	}

	rate := tax.UsufructRate(req.UsufructuaryAge)
	bare := tax.BareOwnershipValue(req.FullValue, req.UsufructuaryAge)

	s.metrics.IncrSimulatorRun("bare_ownership")
	return &domain.BareOwnershipResult{
		UsufructRate:       rate,
		UsufructValue:      req.FullValue - bare,
		BareOwnershipValue: bare,
	}, nil
}

// SimulateCEHR runs the high-income surtax simulator.
func (s *SimulatorService) SimulateCEHR(ctx context.Context, req *domain.CEHRRequest) (*domain.CEHRResult, error) {
	_, span := tracer.Start(ctx, "Simulator.CEHR")
	defer span.End()

	amount, err := tax.CEHR(req.ReferenceIncome, req.Shares)
	if err != nil {
		if errors.Is(err, tax.ErrZeroShares) {
			return nil, &domain.ErrValidation{Field: "shares", Message: "must be greater than zero"}
		}
		return nil, err
	}

	result := &domain.CEHRResult{Tax: amount}
	if req.ReferenceIncome > 0 {
		result.Rate = tax.CEHRRate(req.ReferenceIncome, req.Shares)
	}

	s.metrics.IncrSimulatorRun("cehr")
	return result, nil
}

// Stats returns per-simulator run counters for the admin dashboard.
func (s *SimulatorService) Stats(ctx context.Context) *observability.SimulatorStats {
	_, span := tracer.Start(ctx, "Simulator.Stats")
	defer span.End()

	return s.metrics.GetSimulatorStats()
}
