package models

import (
	"encoding/json"
	"testing"
)

func TestBackendUserToMemberDefaults(t *testing.T) {
	raw := `{"id": 42, "name": "", "mobileNumber": "9876543210", "walletBalance": null, "referralCount": 3, "created_at": "2024-06-01T10:00:00Z"}`

	var u BackendUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m := u.ToMember()

	if m.ID != "42" {
		t.Errorf("ID = %q, want 42", m.ID)
	}
	if m.Name != NotAvailable || m.Email != NotAvailable || m.ReferralCode != NotAvailable {
		t.Errorf("missing strings not defaulted: %+v", m)
	}
	if m.Phone != "9876543210" {
		t.Errorf("Phone = %q", m.Phone)
	}
	if m.Status != MemberActive || m.Role != "USER" || !m.IsActive {
		t.Errorf("defaults wrong: %+v", m)
	}
	if !m.Wallet.IsZero() {
		t.Errorf("Wallet = %s, want 0", m.Wallet)
	}
	if m.JoinedOn != "2024-06-01" {
		t.Errorf("JoinedOn = %q", m.JoinedOn)
	}
}

func TestFlexInt(t *testing.T) {
	cases := map[string]FlexInt{
		`3`:      3,
		`"3"`:    3,
		`" 12 "`: 12,
		`""`:     0,
		`null`:   0,
		`4.0`:    4,
		`"-2"`:   -2,
	}
	for raw, want := range cases {
		var n FlexInt
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			t.Errorf("Unmarshal(%s): %v", raw, err)
			continue
		}
		if n != want {
			t.Errorf("Unmarshal(%s) = %d, want %d", raw, n, want)
		}
	}

	var n FlexInt
	if err := json.Unmarshal([]byte(`"lots"`), &n); err == nil {
		t.Error("expected error for non-numeric string")
	}

	var u BackendUser
	if err := json.Unmarshal([]byte(`{"id":1,"referralCount":"7"}`), &u); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if u.ToMember().ReferralCount != 7 {
		t.Errorf("ReferralCount = %d", u.ToMember().ReferralCount)
	}
}

func TestMilestoneEnabled(t *testing.T) {
	off := false
	var ms []Milestone
	if err := json.Unmarshal([]byte(`[{"id":1},{"id":2,"active":true},{"id":3,"active":false}]`), &ms); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ms[0].Enabled() || !ms[1].Enabled() || ms[2].Enabled() {
		t.Errorf("Enabled = %v %v %v", ms[0].Enabled(), ms[1].Enabled(), ms[2].Enabled())
	}
	if (Milestone{Active: &off}).Enabled() {
		t.Error("explicitly disabled milestone reported enabled")
	}
}

func TestMemberNextStatus(t *testing.T) {
	cases := map[string]string{
		MemberActive:    MemberSuspended,
		MemberSuspended: MemberActive,
		MemberPending:   MemberActive,
	}
	for from, want := range cases {
		if got := (Member{Status: from}).NextStatus(); got != want {
			t.Errorf("NextStatus(%s) = %s, want %s", from, got, want)
		}
	}
}

func TestBackendOrderToOrderTotals(t *testing.T) {
	raw := `{"id": 7, "userName": "Rahul", "productName": "Kit", "productPrice": "250.50", "quantity": 2, "orderedAt": "2024-05-20T08:00:00Z"}`

	var o BackendOrder
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	order := o.ToOrder()

	if order.OrderNumber != "#7" {
		t.Errorf("OrderNumber = %q", order.OrderNumber)
	}
	if order.TotalAmount.String() != "501" {
		t.Errorf("TotalAmount = %s, want 501", order.TotalAmount)
	}
	if order.Status != "Pending" || order.Type != "Direct" {
		t.Errorf("defaults wrong: %+v", order)
	}
	if order.OrderDate != "2024-05-20" {
		t.Errorf("OrderDate = %q", order.OrderDate)
	}
}

func TestBackendPaymentFallbacks(t *testing.T) {
	raw := `{"id": "p1", "total": 99, "paymentStatus": "Paid", "user": {"name": "Priya"}}`

	var p BackendPayment
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	pay := p.ToPayment()

	if pay.Amount.String() != "99" || pay.Method != "Cash" || pay.Status != "Paid" {
		t.Errorf("unexpected payment: %+v", pay)
	}
	if pay.OrderID != "p1" || pay.Member != "Priya" || pay.MemberEmail != NotAvailable {
		t.Errorf("unexpected payment: %+v", pay)
	}
	if !pay.Refundable() {
		t.Error("Paid payment should be refundable")
	}
}

func TestDisplayDate(t *testing.T) {
	cases := map[string]string{
		"":                         NotAvailable,
		"garbage":                  NotAvailable,
		"2024-01-02":               "2024-01-02",
		"2024-01-02 13:04:05":      "2024-01-02",
		"2024-01-02T13:04:05.123Z": "2024-01-02",
	}
	for in, want := range cases {
		if got := DisplayDate(in); got != want {
			t.Errorf("DisplayDate(%q) = %q, want %q", in, got, want)
		}
	}
}
