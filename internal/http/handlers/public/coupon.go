package public

import (
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponPreviewRequest 优惠券试算请求，购物车由调用方提交。
// code 可以为空（无券试算返回零折扣），条目校验交给服务层做。
type CouponPreviewRequest struct {
	Code  string                 `json:"code"`
	Items []service.SnapshotItem `json:"items"`
}

// PreviewCoupon 试算优惠券折扣，不校验使用次数也不产生副作用
func (h *Handler) PreviewCoupon(c *gin.Context) {
	var req CouponPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	cart, err := h.CartService.SnapshotFromItems(req.Items)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	result, err := h.CouponService.PreviewDiscount(req.Code, cart)
	if err != nil {
		respondWithMappedError(c, err, couponErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, result)
}
