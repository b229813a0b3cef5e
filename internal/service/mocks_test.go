package service

import (
	"context"

	"prodexa/internal/catalog"
	"prodexa/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCatalog is a mock implementation of Catalog.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Current() *catalog.Snapshot {
	args := m.Called()
	return args.Get(0).(*catalog.Snapshot)
}

func (m *MockCatalog) Refresh(ctx context.Context) (*catalog.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Snapshot), args.Error(1)
}

func (m *MockCatalog) Create(ctx context.Context, p model.Product) (*catalog.Snapshot, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Snapshot), args.Error(1)
}

func (m *MockCatalog) Update(ctx context.Context, name string, p model.Product) (*catalog.Snapshot, error) {
	args := m.Called(ctx, name, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Snapshot), args.Error(1)
}

func (m *MockCatalog) Delete(ctx context.Context, name string) (*catalog.Snapshot, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Snapshot), args.Error(1)
}

// MockArchiver is a mock implementation of archive.Archiver.
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProducts() []model.Product {
	return []model.Product{
		{Name: "Soap", Price: d("50.00"), Stock: 10, Category: "Grocery"},
		{Name: "Oil", Price: d("250.00"), Stock: 3, Category: "Grocery"},
	}
}
