package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/render"
	"imovelhub-api/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// propertyExportHeader export column order, shared by CSV and XLSX
var propertyExportHeader = []string{
	"Código",
	"Título",
	"Finalidade",
	"Status",
	"Tipo",
	"Preço Venda",
	"Preço Locação",
	"Condomínio",
	"IPTU",
	"Quartos",
	"Suítes",
	"Banheiros",
	"Vagas",
	"Área Total",
	"Área Útil",
	"Bairro",
	"Cidade",
	"UF",
	"Proprietário",
	"Telefone Proprietário",
	"Cadastrado em",
}

// ExportService dumps a company's listings to spreadsheet formats.
type ExportService interface {
	ExportCSV(ctx context.Context, companyID string, filter repository.PropertyFilters) ([]byte, error)
	ExportXLSX(ctx context.Context, companyID string, filter repository.PropertyFilters) ([]byte, error)
}

type exportService struct {
	propertiesRepo repository.PropertiesRepository
	logger         *zap.Logger
}

func NewExportService(propertiesRepo repository.PropertiesRepository, logger *zap.Logger) ExportService {
	return &exportService{propertiesRepo: propertiesRepo, logger: logger}
}

// exportPageSize exports page through the repository in chunks
const exportPageSize = 500

func (s *exportService) fetchAll(ctx context.Context, companyID string, filter repository.PropertyFilters) ([]*domain.Property, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	var all []*domain.Property
	for page := 1; ; page++ {
		chunk, total, err := s.propertiesRepo.ListProperties(ctx, companyID, filter, page, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list properties: %w", err)
		}
		all = append(all, chunk...)
		if len(all) >= total || len(chunk) == 0 {
			return all, nil
		}
	}
}

func (s *exportService) ExportCSV(ctx context.Context, companyID string, filter repository.PropertyFilters) ([]byte, error) {
	properties, err := s.fetchAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';' // Brazilian Excel expects semicolons
	if err := w.Write(propertyExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range properties {
		if err := w.Write(exportRow(p)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportXLSX(ctx context.Context, companyID string, filter repository.PropertyFilters) ([]byte, error) {
	properties, err := s.fetchAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Imóveis"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range propertyExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, p := range properties {
		for col, value := range exportRow(p) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(p *domain.Property) []string {
	return []string{
		p.Code,
		p.Title,
		render.PurposeLabel(p.Purpose),
		p.Status,
		p.Kind,
		render.FormatCurrency(p.SalePrice),
		render.FormatCurrency(p.RentalPrice),
		render.FormatCurrency(p.CondominiumFee),
		render.FormatCurrency(p.IPTU),
		render.FormatInt(p.Bedrooms),
		render.FormatInt(p.Suites),
		render.FormatInt(p.Bathrooms),
		render.FormatInt(p.ParkingTotal()),
		render.FormatArea(p.TotalArea),
		render.FormatArea(p.UsefulArea),
		p.Neighborhood,
		p.City,
		p.State,
		p.OwnerName,
		p.OwnerPhone,
		render.FormatDate(p.CreatedAt),
	}
}
