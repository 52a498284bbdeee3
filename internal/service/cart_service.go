package service

import (
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车业务，负责组装折扣引擎使用的快照
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem 加入购物车（同商品数量累加）
func (s *CartService) AddItem(userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrQuantityInvalid
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductInactive
	}
	return s.carts.Upsert(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity 覆盖数量，0 视为删除
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrQuantityInvalid
	}
	item, err := s.carts.GetItem(userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if quantity == 0 {
		return s.carts.RemoveItem(userID, productID)
	}
	return s.carts.UpdateQuantity(userID, productID, quantity)
}

// RemoveItem 删除条目
func (s *CartService) RemoveItem(userID, productID uint) error {
	item, err := s.carts.GetItem(userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.carts.RemoveItem(userID, productID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.carts.Clear(userID)
}

// ListItems 获取购物车条目（含商品）
func (s *CartService) ListItems(userID uint) ([]models.CartItem, error) {
	return s.carts.ListByUser(userID)
}

// Snapshot 组装购物车快照：行小计 = 商品单价 × 数量，携带字数。
// 下架或已删除的商品不进入快照。
func (s *CartService) Snapshot(userID uint) (CartSnapshot, error) {
	items, err := s.carts.ListByUser(userID)
	if err != nil {
		return CartSnapshot{}, err
	}
	snapshot := CartSnapshot{Lines: make([]CartLine, 0, len(items))}
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		snapshot.Lines = append(snapshot.Lines, buildCartLine(item.Product, item.Quantity))
	}
	return snapshot, nil
}

// SnapshotItem 外部提交的快照条目
type SnapshotItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// SnapshotFromItems 由调用方提交的条目组装快照，价格与字数以商品库为准。
func (s *CartService) SnapshotFromItems(items []SnapshotItem) (CartSnapshot, error) {
	snapshot := CartSnapshot{Lines: make([]CartLine, 0, len(items))}
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return CartSnapshot{}, ErrQuantityInvalid
		}
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return CartSnapshot{}, err
		}
		if product == nil {
			return CartSnapshot{}, ErrProductNotFound
		}
		if !product.IsActive {
			return CartSnapshot{}, ErrProductInactive
		}
		snapshot.Lines = append(snapshot.Lines, buildCartLine(product, item.Quantity))
	}
	return snapshot, nil
}

func buildCartLine(product *models.Product, quantity int) CartLine {
	lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
	line := CartLine{
		ProductID:  product.ID,
		Title:      product.Title,
		Quantity:   quantity,
		UnitPrice:  product.PriceAmount,
		TotalPrice: models.NewMoneyFromDecimal(lineTotal),
	}
	if product.WordCount > 0 {
		wordCount := product.WordCount
		line.WordCount = &wordCount
	}
	return line
}
