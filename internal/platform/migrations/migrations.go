package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context. Adapters never automigrate themselves.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&shopRecord{},
		&menuRecord{},
		&orderRecord{},
		&idempotencyRecord{},
		&reviewRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Email        string    `gorm:"column:email;uniqueIndex;size:320"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(16)"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	TokenID   string    `gorm:"primaryKey;column:token_id;size:64"`
	UserID    int64     `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Shop schema mirrors the shops Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter. The menu columns are a snapshot
// taken at placement time.
type orderRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	UserID    int64           `gorm:"column:user_id;index"`
	ShopID    int64           `gorm:"column:shop_id;index:idx_orders_shop_status"`
	MenuID    int64           `gorm:"column:menu_id"`
	MenuName  string          `gorm:"column:menu_name"`
	MenuPrice decimal.Decimal `gorm:"column:menu_price;type:numeric(12,2)"`
	Address   string          `gorm:"column:address"`
	Phone     string          `gorm:"column:phone"`
	Status    string          `gorm:"column:status;type:varchar(32);index:idx_orders_shop_status"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	UserID      int64     `gorm:"column:user_id"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     int64     `gorm:"column:order_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

// Review schema mirrors the reviews Postgres adapter. The unique order_id index is what
// keeps a second concurrent review of the same order out.
type reviewRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	OrderID    int64     `gorm:"column:order_id;uniqueIndex"`
	UserID     int64     `gorm:"column:user_id"`
	ShopID     int64     `gorm:"column:shop_id;index:idx_reviews_shop_time"`
	Rating     int       `gorm:"column:rating"`
	Content    string    `gorm:"column:content;type:varchar(100)"`
	ReviewedAt time.Time `gorm:"column:reviewed_at;index:idx_reviews_shop_time"`
}

func (reviewRecord) TableName() string { return "reviews" }
