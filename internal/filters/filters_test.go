package filters

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/example/mlmadmin/internal/models"
)

func members() []models.Member {
	return []models.Member{
		{ID: "1", Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876500001", ReferralCode: "AB12CD34", Status: models.MemberActive},
		{ID: "2", Name: "Priya Shah", Email: "priya@example.com", Phone: "9123400002", ReferralCode: "ZZ99YY88", Status: models.MemberSuspended},
		{ID: "3", Name: "Anil", Email: models.NotAvailable, Phone: "9000000003", ReferralCode: "QQ11WW22", Status: models.MemberActive},
	}
}

func ids[T any](rows []T, id func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func memberID(m models.Member) string { return m.ID }

func TestMembersFilter(t *testing.T) {
	cases := []struct {
		name string
		f    Members
		want []string
	}{
		{"empty matches all", Members{}, []string{"1", "2", "3"}},
		{"name case-insensitive", Members{Search: "ravi"}, []string{"1"}},
		{"email", Members{Search: "PRIYA@"}, []string{"2"}},
		{"referral code", Members{Search: "qq11"}, []string{"3"}},
		{"phone substring", Members{Search: "91234"}, []string{"2"}},
		{"status exact", Members{Status: models.MemberActive}, []string{"1", "3"}},
		{"status all", Members{Status: All}, []string{"1", "2", "3"}},
		{"search and status", Members{Search: "priya", Status: models.MemberActive}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(members(), tc.f.Match), memberID)
			if !equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOrdersFilter(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Customer: "Ravi", Status: "Pending", Type: "Direct", OrderDate: "2024-01-10"},
		{ID: "2", Customer: "Priya", Status: "Delivered", Type: "Direct", OrderDate: "2024-02-01"},
		{ID: "3", Customer: "Ravi Kumar", Status: "Shipped", Type: "Referral", OrderDate: models.NotAvailable},
	}
	id := func(o models.Order) string { return o.ID }

	if got := ids(Apply(orders, Orders{Status: All, Customer: "ravi"}.Match), id); !equal(got, []string{"1", "3"}) {
		t.Errorf("customer filter: %v", got)
	}
	if got := ids(Apply(orders, Orders{DateFrom: "2024-01-10", DateTo: "2024-02-01"}.Match), id); !equal(got, []string{"1", "2"}) {
		t.Errorf("inclusive date range: %v", got)
	}
	if got := ids(Apply(orders, Orders{DateTo: "2024-01-31T23:59:59Z"}.Match), id); !equal(got, []string{"1"}) {
		t.Errorf("date-time bound: %v", got)
	}
	if got := ids(Apply(orders, Orders{Type: "referral"}.Match), id); !equal(got, []string{"3"}) {
		t.Errorf("type filter: %v", got)
	}
}

func TestPaymentsFilterAmountRange(t *testing.T) {
	payments := []models.Payment{
		{ID: "a", Member: "Ravi", Amount: decimal.NewFromInt(100), Method: "Cash", Status: "Paid"},
		{ID: "b", Member: "Priya", Amount: decimal.NewFromInt(500), Method: "UPI", Status: "Failed"},
		{ID: "c", Member: "Anil", Amount: decimal.NewFromInt(1000), Method: "UPI", Status: "Paid"},
	}
	id := func(p models.Payment) string { return p.ID }

	if got := ids(Apply(payments, Payments{MinAmount: "100", MaxAmount: "500"}.Match), id); !equal(got, []string{"a", "b"}) {
		t.Errorf("amount range: %v", got)
	}
	if got := ids(Apply(payments, Payments{MinAmount: "abc"}.Match), id); !equal(got, []string{"a", "b", "c"}) {
		t.Errorf("invalid bound should be ignored: %v", got)
	}
	if got := ids(Apply(payments, Payments{Method: "UPI", Status: "Paid"}.Match), id); !equal(got, []string{"c"}) {
		t.Errorf("method and status: %v", got)
	}
}

func TestRedeemFilterDropsZeroAmounts(t *testing.T) {
	reqs := []models.RedeemRequest{
		{BankDetails: models.BankDetails{ID: "1"}, RedeemAmount: decimal.Zero},
		{BankDetails: models.BankDetails{ID: "2"}, RedeemAmount: decimal.NewFromInt(250), User: models.UserRef{Name: "Ravi"}},
		{BankDetails: models.BankDetails{ID: "3"}, RedeemAmount: decimal.NewFromInt(-5)},
	}
	got := ids(Apply(reqs, Redeem{}.Match), func(r models.RedeemRequest) string { return r.ID.String() })
	if !equal(got, []string{"2"}) {
		t.Fatalf("got %v", got)
	}
}

func TestRewardsFilter(t *testing.T) {
	rewards := []models.Reward{
		{ID: "1", UserID: "10", Reason: "Referral bonus", Revoked: false, CreatedAt: "2024-03-01T10:00:00Z"},
		{ID: "2", UserID: "11", Reason: "Milestone", Revoked: true, CreatedAt: "2024-03-05T10:00:00Z"},
		{ID: "3", UserID: "10", Reason: "Manual", Revoked: true, CreatedAt: "2024-04-01T10:00:00Z"},
	}
	id := func(r models.Reward) string { return r.ID.String() }

	if got := ids(Apply(rewards, Rewards{Revoked: "true"}.Match), id); !equal(got, []string{"2", "3"}) {
		t.Errorf("revoked=true: %v", got)
	}
	if got := ids(Apply(rewards, Rewards{Revoked: "false"}.Match), id); !equal(got, []string{"1"}) {
		t.Errorf("revoked=false: %v", got)
	}
	if got := ids(Apply(rewards, Rewards{Revoked: All, UserID: "10"}.Match), id); !equal(got, []string{"1", "3"}) {
		t.Errorf("userId: %v", got)
	}
	if got := ids(Apply(rewards, Rewards{DateFrom: "2024-03-01", DateTo: "2024-03-31", Reason: "mile"}.Match), id); !equal(got, []string{"2"}) {
		t.Errorf("reason and dates: %v", got)
	}

	q := Rewards{UserID: "10", Revoked: "All", DateFrom: "2024-03-01"}.Query()
	if q.Get("userId") != "10" || q.Get("startDate") != "2024-03-01" || q.Has("revoked") {
		t.Errorf("query = %v", q)
	}
}

func TestIncomeDateRangeAndQuery(t *testing.T) {
	entries := []models.IncomeEntry{
		{ID: "may", Type: models.IncomeDirect, Date: "2024-05-20"},
		{ID: "june", Type: models.IncomeDirect, Date: "2024-06-10"},
		{ID: "undated", Type: models.IncomeDirect, Date: models.NotAvailable},
	}
	f := Income{Type: All, DateFrom: "2024-06-01", DateTo: "2024-06-30"}
	if got := ids(Apply(entries, f.Match), func(e models.IncomeEntry) string { return e.ID }); !equal(got, []string{"june"}) {
		t.Errorf("income date range = %v", got)
	}

	q := f.Query()
	if q.Get("dateFrom") != "2024-06-01" || q.Get("dateTo") != "2024-06-30" || q.Has("type") {
		t.Errorf("query = %v", q)
	}
	q = Income{Type: models.IncomeRewards, Member: " Ravi ", MinAmount: "10"}.Query()
	if q.Get("type") != models.IncomeRewards || q.Get("member") != "Ravi" || q.Get("minAmount") != "10" {
		t.Errorf("query = %v", q)
	}
}

func TestGiftsIncomeKYCProducts(t *testing.T) {
	gifts := []models.Gift{
		{ID: "1", Reward: "Phone", Status: models.GiftPending, User: &models.UserRef{Name: "Ravi"}, Date: "2024-05-01"},
		{ID: "2", Reward: "Bike", Status: models.GiftApproved, Date: "2024-05-02"},
	}
	if got := Apply(gifts, Gifts{Member: "ravi"}.Match); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("gift member filter: %+v", got)
	}

	entries := []models.IncomeEntry{
		{ID: "1", Type: models.IncomeDirect, Member: "Ravi", Amount: decimal.NewFromInt(50)},
		{ID: "2", Type: models.IncomeRewards, Member: "Priya", Amount: decimal.NewFromInt(150)},
	}
	if got := Apply(entries, Income{Type: models.IncomeRewards, MinAmount: "100"}.Match); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("income filter: %+v", got)
	}

	kyc := []models.KYCRecord{
		{ID: "1", Member: "Ravi", DocNumber: "ABCDE1234F", Status: models.KYCPending},
		{ID: "2", Member: "Priya", DocNumber: "XYZ999", Status: models.KYCApproved},
	}
	if got := Apply(kyc, KYC{Search: "xyz"}.Match); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("kyc search: %+v", got)
	}

	products := []models.Product{
		{ID: "1", Name: "Starter Kit", Status: "Active", Type: "Physical"},
		{ID: "2", Name: "E-Book", Status: "Inactive", Type: "Digital"},
	}
	if got := Apply(products, Products{Name: "kit", Status: "active"}.Match); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("product filter: %+v", got)
	}
}
