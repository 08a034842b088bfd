package models

import (
	"github.com/shopspring/decimal"
)

// BackendOrder is a row of the backend's flattened order-details listing.
type BackendOrder struct {
	ID                FlexID              `json:"id"`
	UserID            FlexID              `json:"userId"`
	UserName          string              `json:"userName"`
	UserEmail         string              `json:"userEmail"`
	UserMobile        string              `json:"userMobile"`
	UserAddress       string              `json:"userAddress"`
	UserReferralCode  string              `json:"userReferralCode"`
	UserPaymentStatus string              `json:"userPaymentStatus"`
	ProductID         FlexID              `json:"productId"`
	ProductName       string              `json:"productName"`
	ProductCode       string              `json:"productCode"`
	ProductStatus     string              `json:"productStatus"`
	ProductPrice      decimal.NullDecimal `json:"productPrice"`
	Quantity          FlexInt             `json:"quantity"`
	Status            string              `json:"status"`
	Type              string              `json:"type"`
	OrderedAt         string              `json:"orderedAt"`
	TrackingNumber    string              `json:"trackingNumber"`
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Code     string          `json:"code,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Status   string          `json:"status,omitempty"`
}

// Order is the normalized order row.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Customer        string          `json:"customer"`
	CustomerID      string          `json:"customerId"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerMobile  string          `json:"customerMobile"`
	ShippingAddress string          `json:"shippingAddress"`
	Products        []OrderItem     `json:"products"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
	OrderDate       string          `json:"orderDate"`
	PaymentStatus   string          `json:"paymentStatus"`
	TrackingNumber  string          `json:"trackingNumber"`
}

// OrderStatuses lists the statuses offered in the order action menu.
var OrderStatuses = []string{"Pending", "confirmed", "Shipped", "Delivered", "Cancelled"}

// ToOrder normalizes a backend order row.
func (o BackendOrder) ToOrder() Order {
	price := o.ProductPrice.Decimal
	return Order{
		ID:              o.ID.String(),
		OrderNumber:     "#" + o.ID.String(),
		Customer:        orDefault(o.UserName, "Unknown"),
		CustomerID:      o.UserID.String(),
		CustomerEmail:   o.UserEmail,
		CustomerMobile:  o.UserMobile,
		ShippingAddress: orDefault(o.UserAddress, NotAvailable),
		Products: []OrderItem{{
			ID:       o.ProductID.String(),
			Name:     o.ProductName,
			Code:     o.ProductCode,
			Price:    price,
			Quantity: o.Quantity.Int(),
			Status:   o.ProductStatus,
		}},
		TotalAmount:    price.Mul(decimal.NewFromInt(int64(o.Quantity))),
		Status:         orDefault(o.Status, "Pending"),
		Type:           orDefault(o.Type, "Direct"),
		OrderDate:      DisplayDate(o.OrderedAt),
		PaymentStatus:  orDefault(o.UserPaymentStatus, "Pending"),
		TrackingNumber: orDefault(o.TrackingNumber, NotAvailable),
	}
}

// BackendPayment is a backend payment record.
type BackendPayment struct {
	ID            FlexID          `json:"id"`
	OrderID       FlexID          `json:"orderId"`
	User          *UserRef        `json:"user"`
	Amount        decimal.Decimal `json:"amount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Method        string          `json:"method"`
	PaymentStatus string          `json:"paymentStatus"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"createdAt"`
}

// Payment is the normalized payment row.
type Payment struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	Member      string          `json:"member"`
	MemberEmail string          `json:"memberEmail"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
}

// ToPayment normalizes a backend payment.
func (p BackendPayment) ToPayment() Payment {
	out := Payment{
		ID:          p.ID.String(),
		OrderID:     p.OrderID.String(),
		Member:      "Unknown User",
		MemberEmail: NotAvailable,
		Amount:      p.Amount,
		Method:      orDefault(firstNonEmpty(p.Method, p.PaymentMethod), "Cash"),
		Status:      orDefault(firstNonEmpty(p.Status, p.PaymentStatus), "Pending"),
		CreatedAt:   p.CreatedAt,
	}
	if out.OrderID == "" {
		out.OrderID = out.ID
	}
	if out.Amount.IsZero() {
		out.Amount = p.Total
	}
	if p.User != nil {
		out.Member = orDefault(p.User.Name, out.Member)
		out.MemberEmail = orDefault(p.User.Email, out.MemberEmail)
	}
	return out
}

// Refundable reports whether the refund action applies.
func (p Payment) Refundable() bool {
	return p.Status == "Paid" || p.Status == "Completed"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
