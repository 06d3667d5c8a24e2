package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"pharmahub/internal/apperrors"
	"pharmahub/pkg/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// PaymentGateway creates payment tokens at an external provider.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, req payment.TransactionRequest) (*payment.TransactionResponse, error)
}

// PaymentTokenRequest identifies the order a customer is about to pay.
type PaymentTokenRequest struct {
	OrderID       uint
	OrderNumber   string
	Amount        float64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type PaymentToken struct {
	Token       string
	RedirectURL string
	Demo        bool
}

// PaymentService issues payment tokens. In demo mode no gateway call is made.
type PaymentService struct {
	gateway  PaymentGateway
	demoMode bool
}

func NewPaymentService(gateway PaymentGateway, demoMode bool) *PaymentService {
	return &PaymentService{gateway: gateway, demoMode: demoMode}
}

// CreateToken returns a redirect token for an order. It does not touch the order itself.
func (s *PaymentService) CreateToken(ctx context.Context, req PaymentTokenRequest) (*PaymentToken, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(req.OrderNumber) == "" && req.OrderID == 0 {
		fields["orderNumber"] = "orderNumber or orderId is required"
	}
	if req.Amount <= 0 {
		fields["amount"] = "amount must be greater than zero"
	}
	if len(fields) > 0 {
		return nil, apperrors.ValidationFields("Validation failed", fields)
	}

	orderRef := strings.TrimSpace(req.OrderNumber)
	if orderRef == "" {
		orderRef = fmt.Sprintf("%d", req.OrderID)
	}

	if s.demoMode || s.gateway == nil {
		token := "DEMO-" + uuid.NewString()
		log.WithField("order", orderRef).Info("Issued demo payment token")
		return &PaymentToken{
			Token:       token,
			RedirectURL: "/payment/demo?order=" + url.QueryEscape(orderRef) + "&token=" + token,
			Demo:        true,
		}, nil
	}

	resp, err := s.gateway.CreateTransaction(ctx, payment.TransactionRequest{
		TransactionDetails: payment.TransactionDetails{
			OrderID:     orderRef,
			GrossAmount: decimal.NewFromFloat(req.Amount).Round(0).IntPart(),
		},
		CustomerDetails: payment.CustomerDetails{
			FirstName: req.CustomerName,
			Email:     req.CustomerEmail,
			Phone:     req.CustomerPhone,
		},
	})
	if err != nil {
		return nil, apperrors.Integration(err, "failed to create payment token")
	}

	return &PaymentToken{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}
