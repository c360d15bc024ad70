package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/timeofday"
)

var (
	_ ports.ShopRepository = (*ShopRepository)(nil)
	_ ports.MenuRepository = (*MenuRepository)(nil)
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ShopRepository persists shops in PostgreSQL using GORM.
type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

type shopRecord struct {
	ID             int64           `gorm:"primaryKey;column:id"`
	OwnerID        int64           `gorm:"column:owner_id;index:idx_shops_owner_closed"`
	Name           string          `gorm:"column:name"`
	OpenTime       string          `gorm:"column:open_time;type:varchar(8)"`
	CloseTime      string          `gorm:"column:close_time;type:varchar(8)"`
	MinOrderAmount decimal.Decimal `gorm:"column:min_order_amount;type:numeric(12,2)"`
	Closed         bool            `gorm:"column:closed;index:idx_shops_owner_closed"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (shopRecord) TableName() string { return "shops" }

func (r *ShopRepository) Save(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, errors.New("shop is nil")
	}
	db := transaction.DB(ctx, r.db)
	record := toShopRecord(shop)
	if record.ID == 0 {
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain()
	}
	result := db.Model(&shopRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":             record.Name,
			"open_time":        record.OpenTime,
			"close_time":       record.CloseTime,
			"min_order_amount": record.MinOrderAmount,
			"closed":           record.Closed,
			"updated_at":       gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *ShopRepository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shopRecord
	if err := transaction.DB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// CountOpenByOwner takes a transaction-scoped advisory lock on the owner when called
// inside a transaction, so two concurrent creations cannot both pass the cap.
func (r *ShopRepository) CountOpenByOwner(ctx context.Context, ownerID int64) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	db := transaction.DB(ctx, r.db)
	if transaction.InTx(ctx) {
		if err := db.Exec("SELECT pg_advisory_xact_lock(?)", ownerID).Error; err != nil {
			return 0, err
		}
	}
	var count int64
	if err := db.Model(&shopRecord{}).Where("owner_id = ? AND closed = ?", ownerID, false).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *ShopRepository) SearchByName(ctx context.Context, name string) ([]*domain.Shop, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := transaction.DB(ctx, r.db).Order("id ASC")
	if name != "" {
		query = query.Where("name ILIKE ?", "%"+likeEscaper.Replace(name)+"%")
	}
	var records []shopRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	shops := make([]*domain.Shop, 0, len(records))
	for i := range records {
		shop, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, nil
}

func (r *ShopRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shop repository not configured")
	}
	return nil
}

func toShopRecord(shop *domain.Shop) shopRecord {
	return shopRecord{
		ID:             shop.ID,
		OwnerID:        shop.Owner,
		Name:           shop.Name,
		OpenTime:       shop.Hours.Open.String(),
		CloseTime:      shop.Hours.Close.String(),
		MinOrderAmount: shop.MinOrderAmount,
		Closed:         shop.Closed,
	}
}

func (r shopRecord) toDomain() (*domain.Shop, error) {
	open, err := timeofday.Parse(r.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("shop %d open time: %w", r.ID, err)
	}
	closing, err := timeofday.Parse(r.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("shop %d close time: %w", r.ID, err)
	}
	return &domain.Shop{
		ID:             r.ID,
		Owner:          r.OwnerID,
		Name:           r.Name,
		Hours:          timeofday.Window{Open: open, Close: closing},
		MinOrderAmount: r.MinOrderAmount,
		Closed:         r.Closed,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

// MenuRepository persists menus in PostgreSQL using GORM.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

type menuRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	ShopID    int64           `gorm:"column:shop_id;index:idx_menus_shop_status"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Status    string          `gorm:"column:status;type:varchar(16);index:idx_menus_shop_status"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (menuRecord) TableName() string { return "menus" }

func (r *MenuRepository) Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, errors.New("menu is nil")
	}
	db := transaction.DB(ctx, r.db)
	record := toMenuRecord(menu)
	if record.ID == 0 {
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := db.Model(&menuRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":       record.Name,
			"price":      record.Price,
			"status":     record.Status,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrMenuNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *MenuRepository) GetByID(ctx context.Context, id int64) (*domain.Menu, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record menuRecord
	if err := transaction.DB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrMenuNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *MenuRepository) ListActiveByShop(ctx context.Context, shopID int64) ([]*domain.Menu, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []menuRecord
	if err := transaction.DB(ctx, r.db).
		Where("shop_id = ? AND status <> ?", shopID, string(domain.MenuStatusDeleted)).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	menus := make([]*domain.Menu, 0, len(records))
	for i := range records {
		menus = append(menus, records[i].toDomain())
	}
	return menus, nil
}

func (r *MenuRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres menu repository not configured")
	}
	return nil
}

func toMenuRecord(menu *domain.Menu) menuRecord {
	return menuRecord{
		ID:     menu.ID,
		ShopID: menu.ShopID,
		Name:   menu.Name,
		Price:  menu.Price,
		Status: string(menu.Status),
	}
}

func (r menuRecord) toDomain() *domain.Menu {
	return &domain.Menu{
		ID:        r.ID,
		ShopID:    r.ShopID,
		Name:      r.Name,
		Price:     r.Price,
		Status:    domain.MenuStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
