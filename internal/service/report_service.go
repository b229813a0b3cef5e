package service

import (
	"context"
	"io"

	"prodexa/internal/export"
	"prodexa/internal/model"

	"github.com/rs/zerolog"
)

// reportService implements ReportService.
type reportService struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(cat Catalog, logger zerolog.Logger) ReportService {
	return &reportService{
		catalog: cat,
		logger:  logger.With().Str("service", "report").Logger(),
	}
}

// Summary returns the product table.
func (s *reportService) Summary(ctx context.Context) (*model.ProductList, error) {
	return listOf(s.catalog.Current()), nil
}

// WriteExcel writes the product table as an xlsx workbook.
func (s *reportService) WriteExcel(ctx context.Context, w io.Writer) error {
	products := s.catalog.Current().Products()
	if err := export.WriteProductsExcel(w, products); err != nil {
		s.logger.Error().Err(err).Msg("failed to export summary workbook")
		return err
	}

	s.logger.Info().Int("products", len(products)).Msg("summary workbook exported")
	return nil
}

// WriteCSV writes the product table as CSV.
func (s *reportService) WriteCSV(ctx context.Context, w io.Writer) error {
	products := s.catalog.Current().Products()
	if err := export.WriteProductsCSV(w, products); err != nil {
		s.logger.Error().Err(err).Msg("failed to export summary csv")
		return err
	}

	s.logger.Info().Int("products", len(products)).Msg("summary csv exported")
	return nil
}

// WriteChart renders one of the catalogue charts as HTML.
func (s *reportService) WriteChart(ctx context.Context, w io.Writer, kind string) error {
	if err := export.WriteChart(w, export.ChartKind(kind), s.catalog.Current().Products()); err != nil {
		s.logger.Warn().Err(err).Str("chart", kind).Msg("failed to render chart")
		return err
	}
	return nil
}
