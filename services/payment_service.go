package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"phantoms-store/logger"
	"phantoms-store/models"
	"phantoms-store/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type emiTerm struct {
	months     int
	annualRate float64
}

var emiTerms = []emiTerm{
	{months: 3, annualRate: 0},
	{months: 6, annualRate: 12},
	{months: 9, annualRate: 13},
	{months: 12, annualRate: 14},
}

// PaymentService is a mock checkout. Nothing is charged or settled.
type PaymentService interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error)
	EmiOptions(amount string) ([]models.EmiPlan, error)
}

type paymentService struct {
	productRepo repositories.ProductRepository
	now         func() time.Time
}

func NewPaymentService(productRepo repositories.ProductRepository) PaymentService {
	return &paymentService{
		productRepo: productRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error) {
	product, err := s.productRepo.GetActiveByProductID(ctx, strings.ToUpper(strings.TrimSpace(req.ProductID)))
	if err != nil {
		return nil, err
	}

	resp := &models.PaymentResponse{
		OrderID:       "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
		Status:        "success",
		ProductID:     product.ProductID,
		Amount:        product.Price,
		Currency:      product.Currency,
		PaymentMethod: req.PaymentMethod,
		Message:       fmt.Sprintf("Payment for %s received", product.Name),
		ProcessedAt:   s.now(),
	}

	if req.PaymentMethod == "emi" {
		if req.EmiMonths == 0 {
			return nil, models.ErrorValidation{Message: "emiMonths is required for emi payments"}
		}
		plans, err := s.EmiOptions(product.Price)
		if err != nil {
			return nil, err
		}
		for i := range plans {
			if plans[i].Months == req.EmiMonths {
				resp.EmiPlan = &plans[i]
			}
		}
		if resp.EmiPlan == nil {
			return nil, models.ErrorValidation{Message: fmt.Sprintf("no emi plan for %d months", req.EmiMonths)}
		}
		resp.Message = fmt.Sprintf("EMI of %s %s x %d months set up for %s",
			resp.Currency, resp.EmiPlan.MonthlyInstallment, resp.EmiPlan.Months, product.Name)
	}

	logger.Info(ctx, "mock payment processed",
		zap.String("order_id", resp.OrderID),
		zap.String("product_id", resp.ProductID),
		zap.String("method", resp.PaymentMethod))
	return resp, nil
}

func (s *paymentService) EmiOptions(amount string) ([]models.EmiPlan, error) {
	if !models.IsValidPrice(amount) {
		return nil, models.ErrorValidation{Message: "amount must be a positive decimal with at most two fraction digits"}
	}
	principal, err := strconv.ParseFloat(amount, 64)
	if err != nil || principal <= 0 {
		return nil, models.ErrorValidation{Message: "amount must be greater than zero"}
	}

	plans := make([]models.EmiPlan, 0, len(emiTerms))
	for _, term := range emiTerms {
		plans = append(plans, emiPlan(principal, term))
	}
	return plans, nil
}

// emiPlan applies the reducing-balance formula P*r*(1+r)^n / ((1+r)^n - 1).
func emiPlan(principal float64, term emiTerm) models.EmiPlan {
	n := float64(term.months)
	monthly := principal / n
	if term.annualRate > 0 {
		r := term.annualRate / 12 / 100
		growth := math.Pow(1+r, n)
		monthly = principal * r * growth / (growth - 1)
	}

	total := round2(monthly * n)
	return models.EmiPlan{
		Months:             term.months,
		AnnualRate:         term.annualRate,
		MonthlyInstallment: formatAmount(monthly),
		TotalPayable:       formatAmount(total),
		TotalInterest:      formatAmount(math.Max(0, total-principal)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}
