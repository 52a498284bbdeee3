package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/wordmart/internal/http/handlers/shared"
	"github.com/wordmart/internal/http/response"
	"github.com/wordmart/internal/repository"
	"github.com/wordmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCoupons 优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.IsActive = &active
	}
	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.NewPagination(page, pageSize, total))
}

// GetCoupon 优惠券详情
func (h *Handler) GetCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Get(couponID)
	if err != nil {
		respondCouponAdminError(c, err)
		return
	}
	response.Success(c, coupon)
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var input service.CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		respondCouponAdminError(c, err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon, err := h.CouponAdminService.Update(couponID, input)
	if err != nil {
		respondCouponAdminError(c, err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(couponID); err != nil {
		respondCouponAdminError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondCouponAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "error.coupon_not_found", nil)
	case errors.Is(err, service.ErrCouponCodeRequired):
		respondError(c, response.CodeBadRequest, "error.coupon_code_required", nil)
	case errors.Is(err, service.ErrCouponCodeTaken):
		respondError(c, response.CodeBadRequest, "error.coupon_exists", nil)
	case errors.Is(err, service.ErrCouponTypeInvalid):
		respondError(c, response.CodeBadRequest, "error.coupon_type_invalid", nil)
	case errors.Is(err, service.ErrCouponValueInvalid):
		respondError(c, response.CodeBadRequest, "error.coupon_value_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
