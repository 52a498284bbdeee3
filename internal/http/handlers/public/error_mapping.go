package public

import (
	"errors"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/payment/stripe"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.CurrentUserID(c)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCouponNotFound, code: response.CodeNotFound, key: "error.coupon_not_found"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, key: "error.coupon_min_amount"},
	{target: service.ErrCouponSingleItemOnly, code: response.CodeBadRequest, key: "error.coupon_single_item_only"},
	{target: service.ErrCouponUsageLimit, code: response.CodeBadRequest, key: "error.coupon_usage_limit"},
	{target: service.ErrCouponPerUserLimit, code: response.CodeBadRequest, key: "error.coupon_per_user_limit"},
	{target: service.ErrCouponNoEligibleItems, code: response.CodeBadRequest, key: "error.coupon_no_eligible_items"},
	{target: service.ErrCouponWordCountExceeded, code: response.CodeBadRequest, key: "error.coupon_word_count_exceeded"},
	{target: service.ErrCouponTypeInvalid, code: response.CodeBadRequest, key: "error.coupon_type_invalid"},
	{target: service.ErrCouponProductRequired, code: response.CodeBadRequest, key: "error.coupon_product_required"},
	{target: service.ErrCouponMinQuantity, code: response.CodeBadRequest, key: "error.coupon_min_quantity"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_invalid"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStateInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

var paymentErrorRules = concatMappedHandlerErrors(orderErrorRules, []mappedHandlerError{
	{target: service.ErrPaymentNotConfigured, code: response.CodeBadRequest, key: "error.payment_not_configured"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, key: "error.payment_not_found"},
	{target: stripe.ErrRequestFailed, code: response.CodeInternal, key: "error.payment_gateway_failed"},
	{target: stripe.ErrResponseInvalid, code: response.CodeInternal, key: "error.payment_gateway_failed"},
})

var ticketErrorRules = []mappedHandlerError{
	{target: service.ErrTicketNotFound, code: response.CodeNotFound, key: "error.ticket_not_found"},
	{target: service.ErrTicketInputInvalid, code: response.CodeBadRequest, key: "error.ticket_input_invalid"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

var checkoutErrorRules = concatMappedHandlerErrors(couponErrorRules, cartErrorRules)

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
