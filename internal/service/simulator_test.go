package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/service"

	"go.uber.org/zap"
)

func newSimulator() *service.SimulatorService {
	return service.NewSimulatorService(observability.NewMetrics(), zap.NewNop())
}

func TestSimulateIncomeTax(t *testing.T) {
	svc := newSimulator()

	result, err := svc.SimulateIncomeTax(context.Background(), &domain.IncomeTaxRequest{
		TaxableIncome: 60000,
		Married:       true,
		Children:      2,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Shares != 3.0 {
		t.Errorf("expected 3 shares, got %v", result.Shares)
	}
	if result.Tax <= 0 {
		t.Errorf("expected positive tax, got %v", result.Tax)
	}
	if result.EffectiveRate <= 0 || result.EffectiveRate >= 0.45 {
		t.Errorf("effective rate out of range: %v", result.EffectiveRate)
	}
}

func TestSimulateIncomeTax_ZeroIncome(t *testing.T) {
	svc := newSimulator()

	result, err := svc.SimulateIncomeTax(context.Background(), &domain.IncomeTaxRequest{
		TaxableIncome: 0,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Tax != 0 {
		t.Errorf("expected zero tax, got %v", result.Tax)
	}
	if result.EffectiveRate != 0 {
		t.Errorf("expected zero effective rate, got %v", result.EffectiveRate)
	}
}

func TestSimulateDonation(t *testing.T) {
	svc := newSimulator()

	result, err := svc.SimulateDonation(context.Background(), &domain.DonationRequest{
		Amount:       150000,
		Relationship: "child",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.AbatementUsed != 100000 {
		t.Errorf("expected full allowance used, got %v", result.AbatementUsed)
	}
	if result.TaxableAmount != 50000 {
		t.Errorf("expected 50000 taxable, got %v", result.TaxableAmount)
	}
	if result.Tax <= 0 {
		t.Errorf("expected positive tax, got %v", result.Tax)
	}
}

func TestSimulateDonation_UnknownRelationship(t *testing.T) {
	svc := newSimulator()

	_, err := svc.SimulateDonation(context.Background(), &domain.DonationRequest{
		Amount:       10000,
		Relationship: "business_partner",
	})

	var validationErr *domain.ErrValidation
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Field != "relationship" {
		t.Errorf("expected relationship field, got %s", validationErr.Field)
	}
}

func TestSimulateRealEstateGains(t *testing.T) {
	svc := newSimulator()

	result, err := svc.SimulateRealEstateGains(context.Background(), &domain.RealEstateGainsRequest{
		DetentionYears: 30,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IRAbatement != 100 || result.SocialAbatement != 100 {
		t.Errorf("expected full exemption at 30 years, got ir=%v social=%v", result.IRAbatement, result.SocialAbatement)
	}
}

func TestSimulateRealEstateGains_NegativeYears(t *testing.T) {
	svc := newSimulator()

	_, err := svc.SimulateRealEstateGains(context.Background(), &domain.RealEstateGainsRequest{
		DetentionYears: -1,
	})

	var validationErr *domain.ErrValidation
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSimulateSecuritiesGains(t *testing.T) {
	svc := newSimulator()

	result, err := svc.SimulateSecuritiesGains(context.Background(), &domain.SecuritiesGainsRequest{
		DetentionYears: 5,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Abatement != 62.5 {
		t.Errorf("expected 62.5 abatement at 5 years, got %v", result.Abatement)
	}
}

func TestSimulateBareOwnership(t *testing.T) {
	svc := newSimulator()

	result, err := svc.SimulateBareOwnership(context.Background(), &domain.BareOwnershipRequest{
		FullValue:       500000,
		UsufructuaryAge: 65,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.UsufructRate != 40 {
		t.Errorf("expected usufruct rate 40 at age 65, got %v", result.UsufructRate)
	}
	if result.BareOwnershipValue != 300000 {
		t.Errorf("expected bare ownership 300000, got %v", result.BareOwnershipValue)
	}
	if result.UsufructValue != 200000 {
		t.Errorf("expected usufruct value 200000, got %v", result.UsufructValue)
	}
}

func TestSimulateCEHR(t *testing.T) {
	svc := newSimulator()

	result, err := svc.SimulateCEHR(context.Background(), &domain.CEHRRequest{
		ReferenceIncome: 600000,
		Shares:          1,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Rate != 0.04 {
		t.Errorf("expected 4%% rate, got %v", result.Rate)
	}
	if result.Tax != 24000 {
		t.Errorf("expected 24000 tax, got %v", result.Tax)
	}
}

func TestSimulateCEHR_ZeroShares(t *testing.T) {
	svc := newSimulator()

	_, err := svc.SimulateCEHR(context.Background(), &domain.CEHRRequest{
		ReferenceIncome: 600000,
		Shares:          0,
	})

	var validationErr *domain.ErrValidation
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSimulatorStats(t *testing.T) {
	svc := newSimulator()

	_, _ = svc.SimulateIncomeTax(context.Background(), &domain.IncomeTaxRequest{TaxableIncome: 30000})
	_, _ = svc.SimulateIncomeTax(context.Background(), &domain.IncomeTaxRequest{TaxableIncome: 45000})
	_, _ = svc.SimulateSecuritiesGains(context.Background(), &domain.SecuritiesGainsRequest{DetentionYears: 3})

	stats := svc.Stats(context.Background())
	if stats.IncomeTax != 2 {
		t.Errorf("expected 2 income tax runs, got %d", stats.IncomeTax)
	}
	if stats.SecuritiesGains != 1 {
		t.Errorf("expected 1 securities run, got %d", stats.SecuritiesGains)
	}
	if stats.Total != 3 {
		t.Errorf("expected 3 total runs, got %d", stats.Total)
	}
}
