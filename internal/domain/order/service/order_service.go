package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	couponModel "bbq_ordering/internal/domain/coupon/model"
	couponRepo "bbq_ordering/internal/domain/coupon/repository"
	"bbq_ordering/internal/domain/order/model"
	"bbq_ordering/internal/domain/order/repository"
	productRepo "bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/pkg/notify"
	"bbq_ordering/pkg/logger"
	"bbq_ordering/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderItemInput 下单的商品行
type OrderItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderInput 下单请求
type CreateOrderInput struct {
	Items        []OrderItemInput `json:"items" binding:"required"`
	CouponID     *uint            `json:"couponId"`
	Remark       string           `json:"remark"`
	DeliveryType string           `json:"deliveryType" binding:"required,oneof=self delivery"`
	Address      string           `json:"address"`
}

type OrderService interface {
	// CreateOrder 占库存、核销券、算价、落单，全部在一个事务里
	CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error)
	// CancelOrder 用户取消自己的待处理订单：归还库存、恢复优惠券
	CancelOrder(userID, orderID uint) (*model.Order, error)
	// UpdateStatus 商家推进订单状态，pending→cancelled 走和用户取消相同的补偿
	UpdateStatus(orderID uint, to model.Status) (*model.Order, error)
	// Preview 下单前试算价格，不占库存不核销券
	Preview(userID uint, input CreateOrderInput) (*Breakdown, error)
	GetOrder(userID, orderID uint) (*model.Order, error)
	ListMyOrders(userID uint, page, pageSize int) ([]model.Order, int64, error)
	ListOrders(filter repository.BusinessFilter, page, pageSize int) ([]model.Order, int64, error)
}

type orderService struct {
	db        *gorm.DB
	repo      repository.OrderRepository
	inventory productRepo.InventoryRepository
	products  productRepo.ProductRepository
	coupons   couponRepo.CouponRepository
	notifier  notify.Notifier
}

func NewOrderService(
	db *gorm.DB,
	repo repository.OrderRepository,
	inventory productRepo.InventoryRepository,
	products productRepo.ProductRepository,
	coupons couponRepo.CouponRepository,
	notifier notify.Notifier,
) OrderService {
	return &orderService{
		db:        db,
		repo:      repo,
		inventory: inventory,
		products:  products,
		coupons:   coupons,
		notifier:  notifier,
	}
}

// generateOrderNo 订单号：前缀 + 毫秒时间戳 + 3 位随机数
// 不保证全局唯一，撞号由 order_no 唯一索引兜底，调用方重试即可
func generateOrderNo() string {
	return fmt.Sprintf("ORDER%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// normalizeItems 校验数量并按商品 ID 升序排序
// 所有事务都按同一顺序拿商品行锁，避免交叉死锁
func normalizeItems(items []OrderItemInput) ([]OrderItemInput, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	merged := make(map[uint]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		merged[item.ProductID] += item.Quantity
	}

	normalized := make([]OrderItemInput, 0, len(merged))
	for productID, quantity := range merged {
		normalized = append(normalized, OrderItemInput{ProductID: productID, Quantity: quantity})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].ProductID < normalized[j].ProductID
	})
	return normalized, nil
}

func (s *orderService) CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error) {
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	var order *model.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 逐件占库存，同时拿到加锁行上的单价做快照
		orderItems := make([]model.OrderItem, 0, len(items))
		for _, item := range items {
			product, err := s.inventory.Reserve(tx, item.ProductID, item.Quantity)
			if err != nil {
				var insufficient *productRepo.InsufficientStockError
				if errors.As(err, &insufficient) {
					metrics.StockReservationFailures.
						WithLabelValues(strconv.FormatUint(uint64(item.ProductID), 10)).Inc()
				}
				return err
			}
			orderItems = append(orderItems, model.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		// 可选优惠券：锁住用户未使用的券再核销，防止同一张券并发下两单
		var coupon *couponModel.Coupon
		var userCoupon *couponModel.UserCoupon
		if input.CouponID != nil {
			userCoupon, err = s.coupons.LockUserCoupon(tx, userID, *input.CouponID, false)
			if err != nil {
				if errors.Is(err, couponRepo.ErrUserCouponNotFound) {
					return ErrCouponNotHeld
				}
				return err
			}
			coupon, err = s.coupons.GetByID(userCoupon.CouponID)
			if err != nil {
				return err
			}
		}

		breakdown, err := Quote(orderItems, coupon)
		if err != nil {
			return err
		}

		if userCoupon != nil {
			if err := s.coupons.SetUserCouponUsed(tx, userCoupon.ID, true); err != nil {
				return err
			}
		}

		order = &model.Order{
			OrderNo:        generateOrderNo(),
			UserID:         userID,
			Status:         model.StatusPending,
			OriginalAmount: breakdown.Original,
			DiscountAmount: breakdown.Discount,
			FinalAmount:    breakdown.Final,
			CouponID:       input.CouponID,
			Remark:         input.Remark,
			DeliveryType:   input.DeliveryType,
			Address:        input.Address,
			Items:          orderItems,
		}
		if err := s.repo.Create(tx, order); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.notifier.NotifyNewOrder(order)
	s.notifier.NotifyOrderUpdate(userID, order)
	return order, nil
}

// compensate 取消订单的补偿动作：归还库存、恢复优惠券
// 必须在持有订单行锁的事务里调用
func (s *orderService) compensate(tx *gorm.DB, order *model.Order) error {
	for _, item := range order.Items {
		if _, err := s.inventory.Release(tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if order.CouponID != nil {
		userCoupon, err := s.coupons.LockUserCoupon(tx, order.UserID, *order.CouponID, true)
		if err != nil {
			if errors.Is(err, couponRepo.ErrUserCouponNotFound) {
				// 券记录缺失不阻塞取消，记日志人工跟进
				logger.Log.Warn("cancelled order has no used coupon to restore",
					zap.Uint("orderID", order.ID),
					zap.Uint("couponID", *order.CouponID))
				return nil
			}
			return err
		}
		return s.coupons.SetUserCouponUsed(tx, userCoupon.ID, false)
	}
	return nil
}

func (s *orderService) CancelOrder(userID, orderID uint) (*model.Order, error) {
	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		// 他人订单按不存在处理，不暴露订单是否存在
		order, err = s.repo.LockForUser(tx, orderID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !model.CanTransition(order.Status, model.StatusCancelled) {
			return &InvalidTransitionError{From: order.Status, To: model.StatusCancelled}
		}

		if err := s.compensate(tx, order); err != nil {
			return err
		}
		if err := s.repo.UpdateStatusGuarded(tx, order.ID, order.Status, model.StatusCancelled); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return ErrConflict
			}
			return err
		}
		order.Status = model.StatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCancelledTotal.Inc()
	s.notifier.NotifyOrderUpdate(order.UserID, order)
	return order, nil
}

func (s *orderService) UpdateStatus(orderID uint, to model.Status) (*model.Order, error) {
	if !to.Valid() {
		return nil, &InvalidTransitionError{To: to}
	}

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.repo.Lock(tx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !model.CanTransition(order.Status, to) {
			return &InvalidTransitionError{From: order.Status, To: to}
		}

		// 商家取消和用户取消走同一套补偿，库存和券不能只还一半
		if to == model.StatusCancelled {
			if err := s.compensate(tx, order); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateStatusGuarded(tx, order.ID, order.Status, to); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return ErrConflict
			}
			return err
		}
		order.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}

	if to == model.StatusCancelled {
		metrics.OrdersCancelledTotal.Inc()
	}
	s.notifier.NotifyOrderUpdate(order.UserID, order)
	return order, nil
}

func (s *orderService) Preview(userID uint, input CreateOrderInput) (*Breakdown, error) {
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	// 试算用当前标价，不加锁：真实价格以下单事务里的快照为准
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	var coupon *couponModel.Coupon
	if input.CouponID != nil {
		userCoupons, err := s.coupons.ListUserCoupons(userID)
		if err != nil {
			return nil, err
		}
		for i := range userCoupons {
			if userCoupons[i].CouponID == *input.CouponID && !userCoupons[i].IsUsed {
				coupon = userCoupons[i].Coupon
				break
			}
		}
		if coupon == nil {
			return nil, ErrCouponNotHeld
		}
	}

	breakdown, err := Quote(orderItems, coupon)
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

func (s *orderService) GetOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	// 普通用户只能看自己的订单，userID=0 表示商家侧访问
	if userID != 0 && order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListMyOrders(userID uint, page, pageSize int) ([]model.Order, int64, error) {
	offset := (page - 1) * pageSize
	return s.repo.ListByUser(userID, offset, pageSize)
}

func (s *orderService) ListOrders(filter repository.BusinessFilter, page, pageSize int) ([]model.Order, int64, error) {
	offset := (page - 1) * pageSize
	return s.repo.ListForBusiness(filter, offset, pageSize)
}
