package trade

import (
	"context"
	"errors"

	"github.com/busstore/backend/internal/domain/catalog"
	"github.com/busstore/backend/internal/domain/payment"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/busstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService runs the purchase flow: stock pre-check, payment relay,
// stock commitment and sale recording.
type CheckoutService struct {
	productRepo catalog.ProductRepository
	saleRepo    trade.SaleRepository
	gateway     payment.CardGateway
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	productRepo catalog.ProductRepository,
	saleRepo trade.SaleRepository,
	gateway payment.CardGateway,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// CheckStock verifies that every cart line is currently available. This is
// a read-only pre-check: nothing is reserved, so a clean answer can still
// be beaten by a concurrent buyer at commit time.
func (s *CheckoutService) CheckStock(ctx context.Context, req CheckStockRequest) (*CheckStockResponse, error) {
	cart, err := trade.NewCart(toCartLines(req.Items))
	if err != nil {
		return nil, err
	}

	issues, _, err := s.checkCart(ctx, cart)
	if err != nil {
		return nil, err
	}

	return &CheckStockResponse{
		Available: len(issues) == 0,
		Issues:    issues,
	}, nil
}

// Checkout runs the full purchase flow. The verdict maps to exactly one of
// three outcomes: submitted (paid and recorded), cancelled (provider said
// no) or error (no verdict was obtained).
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	cart, err := trade.NewCart(toCartLines(req.Items))
	if err != nil {
		return nil, err
	}

	shippingAddress, err := req.ShippingAddress.ToAddress()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	issues, products, err := s.checkCart(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return &CheckoutResponse{
			Outcome:     OutcomeCancelled,
			Status:      "not_attempted",
			Message:     "Some items are no longer available.",
			StockIssues: issues,
		}, nil
	}

	// The total is always recomputed from catalog prices. Whatever amount
	// the storefront displayed is not trusted.
	prices := make(map[uuid.UUID]valueobject.Money, len(products))
	for id, product := range products {
		prices[id] = product.GetSellingPriceMoney()
	}
	total, err := cart.Total(prices)
	if err != nil {
		return nil, err
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}

	result, err := s.gateway.ProcessPayment(ctx, payment.CardPaymentRequest{
		Token:           req.Token,
		Amount:          total.Amount(),
		Currency:        string(total.Currency()),
		Installments:    installments,
		PaymentMethodID: req.PaymentMethodID,
		IssuerID:        req.IssuerID,
		Description:     "Bus Store purchase",
		Payer: payment.Payer{
			Email: req.Email,
			Identification: payment.Identification{
				Type:   req.Identification.Type,
				Number: req.Identification.Number,
			},
		},
	})
	if err != nil {
		s.logger.Error("payment relay failed",
			zap.String("email", req.Email),
			zap.Error(err))
		return &CheckoutResponse{
			Outcome: OutcomeError,
			Status:  string(payment.StatusError),
			Message: "The payment could not be processed. Please try again.",
		}, nil
	}

	if !result.Status.IsSuccess() {
		outcome := OutcomeCancelled
		if result.Status == payment.StatusError {
			outcome = OutcomeError
		}
		s.logger.Info("payment not approved",
			zap.String("provider_payment_id", result.ProviderPaymentID),
			zap.String("status", result.Status.String()),
			zap.String("status_detail", result.StatusDetail))
		return &CheckoutResponse{
			Outcome:      outcome,
			Status:       result.Status.String(),
			StatusDetail: result.StatusDetail,
			Message:      payment.RejectionMessage(result.StatusDetail),
		}, nil
	}

	sale, err := s.handleSuccessfulPayment(ctx, cart, products, req, result, shippingAddress)
	if err != nil {
		return nil, err
	}

	saleResp := ToSaleResponse(sale)
	return &CheckoutResponse{
		Outcome:      OutcomeSubmitted,
		Status:       result.Status.String(),
		StatusDetail: result.StatusDetail,
		Sale:         &saleResp,
	}, nil
}

// handleSuccessfulPayment commits stock and records the sale after the
// provider approved the charge.
//
// Stock is decremented per product, each in its own transaction. There is
// deliberately no transaction spanning all products: a failure on one line
// aborts the checkout and propagates to the caller, but earlier lines stay
// committed with no compensating rollback. The sale is recorded only after
// every line decremented; a payment already captured for an aborted
// checkout needs manual follow-up.
func (s *CheckoutService) handleSuccessfulPayment(
	ctx context.Context,
	cart trade.Cart,
	products map[uuid.UUID]*catalog.Product,
	req CheckoutRequest,
	result *payment.CardPaymentResult,
	shippingAddress valueobject.Address,
) (*trade.Sale, error) {
	// Ledger idempotency: a retried callback for the same provider payment
	// must not decrement stock or record a second sale.
	existing, err := s.saleRepo.FindByProviderPaymentID(ctx, result.ProviderPaymentID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for _, line := range cart.Lines {
		key := catalog.VariationKey{Color: line.Color, Size: line.Size}
		if err := s.productRepo.DecrementStock(ctx, line.ProductID, key, line.Quantity); err != nil {
			if errors.Is(err, shared.ErrInsufficientStock) {
				// The pre-check passed but another sale won the race for
				// this line. The payment is already captured.
				s.logger.Warn("stock oversold at commit, checkout aborted",
					zap.String("product_id", line.ProductID.String()),
					zap.String("variation", key.String()),
					zap.Int("quantity", line.Quantity),
					zap.String("provider_payment_id", result.ProviderPaymentID))
			} else {
				s.logger.Error("stock decrement failed, checkout aborted",
					zap.String("product_id", line.ProductID.String()),
					zap.String("variation", key.String()),
					zap.String("provider_payment_id", result.ProviderPaymentID),
					zap.Error(err))
			}
			return nil, err
		}
	}

	saleNumber, err := s.saleRepo.NextSaleNumber(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := trade.NewSale(saleNumber, req.Email, req.BuyerName, trade.PaymentInfo{
		ProviderPaymentID: result.ProviderPaymentID,
		Status:            result.Status.String(),
		Method:            result.Method,
		Installments:      result.Installments,
	}, shippingAddress)
	if err != nil {
		return nil, err
	}

	for _, line := range cart.Lines {
		product := products[line.ProductID]
		if _, err := sale.AddItem(
			line.ProductID,
			product.Code,
			product.Name,
			line.Color,
			line.Size,
			line.Quantity,
			product.GetSellingPriceMoney(),
		); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_number", sale.SaleNumber),
		zap.String("buyer_email", sale.BuyerEmail),
		zap.String("provider_payment_id", result.ProviderPaymentID),
		zap.String("total", sale.TotalAmount.StringFixed(2)))

	return sale, nil
}

// checkCart loads every product in the cart and reports the lines that
// cannot be fulfilled right now.
func (s *CheckoutService) checkCart(ctx context.Context, cart trade.Cart) ([]StockIssue, map[uuid.UUID]*catalog.Product, error) {
	issues := make([]StockIssue, 0)
	products := make(map[uuid.UUID]*catalog.Product, len(cart.Lines))

	for _, line := range cart.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			loaded, err := s.productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					issues = append(issues, StockIssue{
						ProductID: line.ProductID,
						Color:     line.Color,
						Size:      line.Size,
						Requested: line.Quantity,
						Reason:    "product not found",
					})
					continue
				}
				return nil, nil, err
			}
			products[line.ProductID] = loaded
			product = loaded
		}

		if !product.IsActive() {
			issues = append(issues, StockIssue{
				ProductID:   line.ProductID,
				ProductName: product.Name,
				Color:       line.Color,
				Size:        line.Size,
				Requested:   line.Quantity,
				Reason:      "product unavailable",
			})
			continue
		}

		key := catalog.VariationKey{Color: line.Color, Size: line.Size}
		stock, err := product.StockFor(key)
		if err != nil {
			issues = append(issues, StockIssue{
				ProductID:   line.ProductID,
				ProductName: product.Name,
				Color:       line.Color,
				Size:        line.Size,
				Requested:   line.Quantity,
				Reason:      "variation not found",
			})
			continue
		}

		if stock < line.Quantity {
			issues = append(issues, StockIssue{
				ProductID:   line.ProductID,
				ProductName: product.Name,
				Color:       line.Color,
				Size:        line.Size,
				Requested:   line.Quantity,
				Available:   stock,
				Reason:      "insufficient stock",
			})
		}
	}

	return issues, products, nil
}
