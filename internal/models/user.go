package models

import (
	"github.com/shopspring/decimal"
)

// Member statuses the console toggles between.
const (
	MemberActive    = "Active"
	MemberSuspended = "Suspended"
	MemberPending   = "Pending"
	MemberInactive  = "Inactive"
)

// BackendUser is a user record as returned by the backend.
type BackendUser struct {
	ID             FlexID              `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	MobileNumber   string              `json:"mobileNumber"`
	ReferralCode   string              `json:"referral_code"`
	ReferredByCode string              `json:"referred_by_code"`
	PaymentStatus  string              `json:"payment_status"`
	WalletBalance  decimal.NullDecimal `json:"walletBalance"`
	ReferralCount  FlexInt             `json:"referralCount"`
	CreatedAt      string              `json:"created_at"`
	Role           string              `json:"role"`
	IsActive       *bool               `json:"isActive"`
	Address        string              `json:"address"`
	Gender         string              `json:"gender"`
}

// Member is the normalized row rendered on the members page.
type Member struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	ReferralCode  string          `json:"referralCode"`
	Status        string          `json:"status"`
	Wallet        decimal.Decimal `json:"wallet"`
	ReferralCount int             `json:"referralCount"`
	JoinedOn      string          `json:"joinedOn"`
	Role          string          `json:"role"`
	IsActive      bool            `json:"isActive"`
}

// ToMember normalizes a backend user for display.
func (u BackendUser) ToMember() Member {
	active := true
	if u.IsActive != nil {
		active = *u.IsActive
	}
	return Member{
		ID:            u.ID.String(),
		Name:          orDefault(u.Name, NotAvailable),
		Email:         orDefault(u.Email, NotAvailable),
		Phone:         orDefault(u.MobileNumber, NotAvailable),
		ReferralCode:  orDefault(u.ReferralCode, NotAvailable),
		Status:        orDefault(u.PaymentStatus, MemberActive),
		Wallet:        u.WalletBalance.Decimal,
		ReferralCount: u.ReferralCount.Int(),
		JoinedOn:      DisplayDate(u.CreatedAt),
		Role:          orDefault(u.Role, "USER"),
		IsActive:      active,
	}
}

// NextStatus returns the status the suspend/activate action moves to.
func (m Member) NextStatus() string {
	if m.Status == MemberActive {
		return MemberSuspended
	}
	return MemberActive
}

// UserRef is the embedded user summary on payouts, gifts, rewards and orders.
type UserRef struct {
	ID           FlexID `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

// BankDetails holds a member's payout destination.
type BankDetails struct {
	ID                FlexID `json:"id"`
	AccountHolderName string `json:"accountHolderName"`
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	BankName          string `json:"bankName"`
	BranchName        string `json:"branchName"`
	UPIID             string `json:"upiId"`
}

// RedeemRequest is a bank-details record carrying a pending redeem amount.
type RedeemRequest struct {
	BankDetails
	User         UserRef         `json:"user"`
	RedeemAmount decimal.Decimal `json:"redeemAmount"`
	RedeemStatus string          `json:"redeemStatus"`
	UpdatedAt    string          `json:"updatedAt"`
}

// RedeemDeposited marks a redeem request as paid out.
const RedeemDeposited = "deposited"

// Pending reports whether the request still awaits disbursal.
func (r RedeemRequest) Pending() bool {
	return r.RedeemStatus != RedeemDeposited
}

// Payout is a backend payout record.
type Payout struct {
	ID        FlexID          `json:"id"`
	User      UserRef         `json:"user"`
	UserID    FlexID          `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"createdAt"`
}

// Wallet is a member wallet balance row.
type Wallet struct {
	ID      FlexID          `json:"id"`
	User    UserRef         `json:"user"`
	Member  string          `json:"member"`
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"`
}

// MemberName returns the display name for the wallet owner.
func (w Wallet) MemberName() string {
	if w.Member != "" {
		return w.Member
	}
	return orDefault(w.User.Name, "Unknown")
}
