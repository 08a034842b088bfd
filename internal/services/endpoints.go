package services

// Backend endpoint paths, relative to the backend base URL.
const (
	PathAdminLogin = "/api/admin/login"
	PathDashboard  = "/api/admin/dashboard/stats"

	PathUsersAll     = "/api/users/all"
	PathUsersSearch  = "/admin/users"
	PathMilestones   = "/api/admin/milestones"
	PathMilestoneNew = "/admin/milestones"
	PathWallets      = "/admin/wallets"
	PathSettings     = "/admin/settings"
	PathAdminUsers   = "/admin/admin-users"
	PathIncome       = "/admin/income-reports"
	PathTopEarners   = "/admin/income-reports/top-earners"
	PathDailyIncome  = "/admin/income-reports/daily"
	PathOrderDetails = "/product/order-details/all"
	PathOrderStats   = "/admin/orders/stats/summary"
	PathRewards      = "/admin/rewards"
	PathRewardStats  = "/admin/rewards/stats/summary"
	PathPayouts      = "/admin/payouts"
	PathPayoutStats  = "/admin/payouts/stats/summary"
	PathPayments     = "/admin/payments"
	PathPaymentStats = "/admin/payments/stats/summary"
	PathCreateOrder  = "/api/payments/create-order"
	PathGifts        = "/admin/gifts"
	PathGiftStats    = "/admin/gifts/stats/summary"
	PathRewardTarget = "/api/admin/reward-target"
	PathTargetsAll   = "/api/admin/getAll-reward-targets"
	PathKYC          = "/admin/kyc"
	PathKYCBulk      = "/admin/kyc/bulk"
	PathProducts     = "/product/all"
	PathProductAdd   = "/product/add-with-photo"

	PathBankDetailsAll = "/api/bankDetails/getAllBankDetailsWithUsers"

	PathPrivacy       = "/privacy"
	PathPrivacyActive = "/privacy/active"
	PathTerms         = "/terms"
	PathTermsActive   = "/terms/active"
	PathFAQs          = "/faq/getAllFaqs"
	PathFAQCreate     = "/faq/createFaq"
)

func UserStatusPath(id string) string        { return "/api/admin/users/status/" + id }
func UserResetPasswordPath(id string) string { return "/api/admin/users/" + id + "/reset-password" }
func UserDeletePath(id string) string        { return "/api/users/delete/" + id }
func UserDetailPath(id string) string        { return "/admin/users/" + id }
func ReferredByPath(code string) string      { return "/api/users/referredBy/" + code }
func ReferralTreePath(userID string) string  { return "/admin/referral-tree/" + userID }
func AdminUserPath(id string) string         { return PathAdminUsers + "/" + id }

func OrderPath(id string) string         { return "/admin/orders/" + id }
func OrderStatusPath(id string) string   { return "/product/order-status/" + id }
func OrderTrackingPath(id string) string { return OrderPath(id) + "/tracking" }
func OrderCancelPath(id string) string   { return OrderPath(id) + "/cancel" }
func OrderRefundPath(id string) string   { return OrderPath(id) + "/refund" }

func PaymentPath(id string) string       { return PathPayments + "/" + id }
func PaymentRefundPath(id string) string { return PaymentPath(id) + "/refund" }

func PayoutPath(id string) string        { return PathPayouts + "/" + id }
func PayoutApprovePath(id string) string { return PayoutPath(id) + "/approve" }
func PayoutDeclinePath(id string) string { return PayoutPath(id) + "/decline" }

func BankDetailsPath(userID string) string  { return "/api/bankDetails/getBankDetails/" + userID }
func RedeemStatusPath(userID string) string { return "/api/bankDetails/updateRedeemStatus/" + userID }
func RedeemAmountPath(userID string) string { return "/api/bankDetails/updateRedeemAmount/" + userID }
func RedeemHistoryPath(userID string) string {
	return "/api/bankDetails/redeemHistory/" + userID
}

func RewardPath(id string) string       { return PathRewards + "/" + id }
func RewardRevokePath(id string) string { return RewardPath(id) + "/revoke" }

func GiftPath(id string) string        { return PathGifts + "/" + id }
func GiftApprovePath(id string) string { return GiftPath(id) + "/approve" }
func GiftRejectPath(id string) string  { return GiftPath(id) + "/reject" }
func GiftDeliverPath(id string) string { return GiftPath(id) + "/deliver" }
func GiftLogsPath(id string) string    { return GiftPath(id) + "/logs" }

func MilestonePath(id string) string       { return "/admin/milestones/" + id }
func MilestoneActivePath(id string) string { return MilestonePath(id) + "/active" }

func RewardTargetPath(id string) string { return PathRewardTarget + "/" + id }

func KYCApprovePath(id string) string { return PathKYC + "/" + id + "/approve" }
func KYCRejectPath(id string) string  { return PathKYC + "/" + id + "/reject" }

func ProductDeletePath(id string) string { return "/product/deleteProduct/" + id }
func ProductImagePath(id string) string  { return "/product/images/" + id }
