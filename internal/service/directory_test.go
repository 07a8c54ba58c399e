package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/infra/cache"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/service"

	"go.uber.org/zap"
)

type mockDirectoryStore struct {
	lawyers []domain.Lawyer
	calls   int
}

func (m *mockDirectoryStore) ListLawyers(_ context.Context, filter domain.LawyerFilter) ([]domain.Lawyer, error) {
	m.calls++
	if filter.City == "" {
		return m.lawyers, nil
	}
	var out []domain.Lawyer
	for _, l := range m.lawyers {
		if l.City == filter.City {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockDirectoryStore) GetLawyer(_ context.Context, id string) (*domain.Lawyer, error) {
	m.calls++
	for _, l := range m.lawyers {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "lawyer", ID: id}
}

func TestListLawyers_Filter(t *testing.T) {
	store := &mockDirectoryStore{
		lawyers: []domain.Lawyer{
			{ID: "lw-1", FullName: "Claire Dumont", City: "Lyon"},
			{ID: "lw-2", FullName: "Marc Lefevre", City: "Paris"},
		},
	}
	svc := service.NewDirectoryService(store, cache.New[any](5*time.Minute), observability.NewMetrics(), zap.NewNop())

	lawyers, err := svc.ListLawyers(context.Background(), domain.LawyerFilter{City: "Lyon"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(lawyers) != 1 || lawyers[0].ID != "lw-1" {
		t.Errorf("unexpected result: %+v", lawyers)
	}
}

func TestListLawyers_CachesResults(t *testing.T) {
	store := &mockDirectoryStore{
		lawyers: []domain.Lawyer{{ID: "lw-1", FullName: "Claire Dumont", City: "Lyon"}},
	}
	svc := service.NewDirectoryService(store, cache.New[any](5*time.Minute), observability.NewMetrics(), zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := svc.ListLawyers(context.Background(), domain.LawyerFilter{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if store.calls != 1 {
		t.Errorf("expected 1 store call, got %d", store.calls)
	}
}
