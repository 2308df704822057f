package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// 商品/库存模块错误 200xx
	ErrProductNotFound       = 20001
	ErrInsufficientStock     = 20002
	ErrInsufficientAvailable = 20003

	// 采购模块错误 300xx
	ErrPurchaseNotFound = 30001

	// 优惠券模块错误 400xx
	ErrCouponNotFound    = 40001
	ErrCouponNotEligible = 40002
	ErrNoCoupons         = 40003
	ErrCouponUsed        = 40004

	// 订单模块错误 500xx
	ErrOrderNotFound     = 50001
	ErrInvalidTransition = 50002
	ErrOrderForbidden    = 50003

	// 系统错误 900xx
	ErrServerInternal  = 90001
	ErrInvalidParam    = 90002
	ErrTooManyRequests = 90003
	ErrConflict        = 90004
)
