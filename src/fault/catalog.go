package fault

import "strings"

var defaultCatalog = []string{
	"InvalidShippingAddress", "InsufficientInventory", "InvalidCouponCode", "PaymentFailed",
	"ProductNotAvailable", "InvalidCreditCardNumber", "OrderNotFound", "DuplicateEmailAddress",
	"InvalidShippingMethod", "CartEmpty", "InvalidProductVariant", "InsufficientFunds",
	"AccountLocked", "InvalidPromoCode", "InvalidLoginCredentials", "InvalidReturnRequest",
	"OrderCancellationFailed", "InvalidSecurityCode", "ProductOutOfStock", "AccountCreationFailed",
	"InvalidDeliveryAddress", "OrderModificationFaile", "InvalidPaymentMethod", "ProductNotFound",
	"DuplicateOrder", "AccountDeletionFailed", "InvalidEmailAddress", "InvalidOrderStatus",
	"PaymentAuthorizationFailed", "InvalidPhoneNumber", "InvalidShippingOption", "AccountSuspensionFailed",
	"InvalidOrderID", "InvalidCategory", "AccountReactivationFailed", "InvalidProductID",
	"AccountUpdateFailed", "InvalidOrderDetails", "AccountVerificationFailed", "InvalidProductName",
	"AccountLoginFailed", "InvalidOrderQuantity", "AccountLogoutFailed", "InvalidOrderDate",
	"AccountPasswordResetFailed", "InvalidOrderTotal", "AccountCreationLimitExceeded", "InvalidOrderStatusUpdate",
	"AccountDeactivationFailed", "InvalidOrderPayment", "AccountSuspensionLimitExceeded", "InvalidOrderShipping",
	"AccountReactivationLimitExceeded", "InvalidOrderCancellation", "AccountUpdateLimitExceeded", "InvalidOrderModification",
	"AccountVerificationLimitExceeded", "InvalidOrderReturn", "AccountDeletionLimitExceeded",
}

// DefaultCatalog returns a copy of the built-in e-commerce fault names.
func DefaultCatalog() []string {
	out := make([]string, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// ParseCatalog splits a comma separated list of fault names, dropping blank entries.
// Duplicates are kept on purpose: they weight the draw.
func ParseCatalog(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
