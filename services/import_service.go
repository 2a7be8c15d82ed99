package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"phantoms-store/logger"
	"phantoms-store/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
)

const MaxImportRows = 500

var requiredImportColumns = []string{"name", "price", "category"}

// ImportService bulk-creates products from the first sheet of an .xlsx workbook.
type ImportService interface {
	ImportProducts(ctx context.Context, principal models.Principal, r io.Reader) (*models.ImportResult, error)
}

type importService struct {
	products ProductService
	validate *validator.Validate
}

func NewImportService(products ProductService, validate *validator.Validate) ImportService {
	return &importService{
		products: products,
		validate: validate,
	}
}

func (s *importService) ImportProducts(ctx context.Context, principal models.Principal, r io.Reader) (*models.ImportResult, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, models.ErrorValidation{Message: "file is not a valid .xlsx workbook"}
	}
	defer xlsx.Close()

	sheets := xlsx.GetSheetList()
	if len(sheets) == 0 {
		return nil, models.ErrorValidation{Message: "workbook has no sheets"}
	}

	rows, err := xlsx.GetRows(sheets[0])
	if err != nil {
		return nil, models.ErrorValidation{Message: "failed to read sheet " + sheets[0]}
	}
	if len(rows) < 2 {
		return nil, models.ErrorValidation{Message: "sheet has no product rows"}
	}
	if len(rows)-1 > MaxImportRows {
		return nil, models.ErrorValidation{Message: fmt.Sprintf("at most %d rows can be imported at once", MaxImportRows)}
	}

	columns, err := importColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		Created: []models.Product{},
		Errors:  []models.ImportRowError{},
	}

	for i, row := range rows[1:] {
		// Spreadsheet rows are 1-based and row 1 is the header.
		rowNum := i + 2
		if blankRow(row) {
			continue
		}

		req := rowToProductRequest(columns, row)
		if err := s.validate.Struct(req); err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{Row: rowNum, Message: describeValidation(err)})
			continue
		}

		product, err := s.products.Create(ctx, principal, req)
		if err != nil {
			var msg string
			switch err.(type) {
			case models.ErrorValidation, models.ErrorConflict:
				msg = err.Error()
			default:
				logger.Error(ctx, "import row failed", err, zap.Int("row", rowNum))
				msg = "failed to create product"
			}
			result.Errors = append(result.Errors, models.ImportRowError{Row: rowNum, Message: msg})
			continue
		}
		result.Created = append(result.Created, *product)
	}

	logger.Info(ctx, "product import finished",
		zap.String("owner_id", principal.UserID),
		zap.Int("created", len(result.Created)),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// importColumns maps a normalized header name to its column index.
func importColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		if name := normalizeHeader(h); name != "" {
			if _, dup := columns[name]; !dup {
				columns[name] = i
			}
		}
	}

	var missing []string
	for _, col := range requiredImportColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, models.ErrorValidation{Message: "missing columns: " + strings.Join(missing, ", ")}
	}
	return columns, nil
}

func rowToProductRequest(columns map[string]int, row []string) models.CreateProductRequest {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return models.CreateProductRequest{
		Name:         cell("name"),
		Description:  cell("description"),
		Price:        cell("price"),
		Currency:     strings.ToUpper(cell("currency")),
		Category:     strings.ToLower(cell("category")),
		ImageURL:     cell("imageurl"),
		VideoURL:     cell("videourl"),
		PurchaseLink: cell("purchaselink"),
	}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
