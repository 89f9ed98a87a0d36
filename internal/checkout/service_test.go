package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DragonsUnit/AeroCommerce/internal/coupons"
	"github.com/DragonsUnit/AeroCommerce/internal/orders"
	"github.com/DragonsUnit/AeroCommerce/internal/products"
	"github.com/DragonsUnit/AeroCommerce/internal/users"
	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
	"github.com/DragonsUnit/AeroCommerce/pkg/outbox"
	"github.com/DragonsUnit/AeroCommerce/pkg/types"
)

type gormTransactor struct {
	db *gorm.DB
}

func (g *gormTransactor) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

type checkoutFixture struct {
	db      *gorm.DB
	svc     *Service
	orders  orders.Repository
	users   *users.Repository
	outbox  *outbox.Repository
	coupons *coupons.Repository
}

func setupCheckout(t *testing.T, cfg config.CheckoutConfig) *checkoutFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  plan TEXT NOT NULL DEFAULT 'free',
  cart TEXT NOT NULL DEFAULT '{}',
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  images TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  discount NUMERIC NOT NULL,
  for_new_user INTEGER NOT NULL DEFAULT 0,
  for_member INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  address_id TEXT NOT NULL,
  total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'placed',
  is_coupon_used INTEGER NOT NULL DEFAULT 0,
  coupon_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`}
	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}

	ordersRepo := orders.NewRepository(db)
	usersRepo := users.NewRepository(db)
	productsRepo := products.NewRepository(db)
	couponsRepo := coupons.NewRepository(db)
	outboxRepo := outbox.NewRepository(db)

	svc := NewService(
		&gormTransactor{db: db},
		ordersRepo,
		usersRepo,
		productsRepo,
		coupons.NewService(couponsRepo, ordersRepo),
		outbox.NewService(outboxRepo, nil),
		nil,
		nil,
		cfg,
	)

	return &checkoutFixture{
		db:      db,
		svc:     svc,
		orders:  ordersRepo,
		users:   usersRepo,
		outbox:  outboxRepo,
		coupons: couponsRepo,
	}
}

func defaultCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{ShippingFee: "5", MissingProductPolicy: config.MissingProductSkip}
}

func (f *checkoutFixture) seedUser(t *testing.T, cart types.CartContents) *models.User {
	t.Helper()
	if cart == nil {
		cart = types.CartContents{}
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Buyer",
		Plan:         enums.MembershipPlanFree,
		Cart:         cart,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *checkoutFixture) seedProduct(t *testing.T, storeID uuid.UUID, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		StoreID:  storeID,
		Name:     "Product " + price,
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *checkoutFixture) seedCoupon(t *testing.T, code, discount string, forNewUser, forMember bool) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		ID:         uuid.New(),
		Code:       code,
		Discount:   decimal.RequireFromString(discount),
		ForNewUser: forNewUser,
		ForMember:  forMember,
	}
	require.NoError(t, f.db.Create(coupon).Error)
	return coupon
}

func totalsByStore(placed []PlacedOrder) map[uuid.UUID]string {
	result := map[uuid.UUID]string{}
	for _, p := range placed {
		result[p.StoreID] = p.Total
	}
	return result
}

func TestPlaceOrderSingleStoreNonMember(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	storeID := uuid.New()
	pA := f.seedProduct(t, storeID, "10.00")
	pB := f.seedProduct(t, storeID, "20.00")
	user := f.seedUser(t, types.CartContents{pA.ID: 2, pB.ID: 1})

	placed, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:    user.ID,
		AddressID: uuid.New(),
		Lines: []CartLine{
			{ProductID: pA.ID, Quantity: 2},
			{ProductID: pB.ID, Quantity: 1},
		},
		PaymentMethod: enums.PaymentMethodCOD,
	})
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, "45.00", placed[0].Total)
	assert.Equal(t, storeID, placed[0].StoreID)

	// cart cleared inside the same transaction
	reloaded, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Cart.IsEmpty())

	// order + cart events queued
	events, err := f.outbox.FetchUnpublished(10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestPlaceOrderMemberSkipsShipping(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	storeID := uuid.New()
	pA := f.seedProduct(t, storeID, "10.00")
	pB := f.seedProduct(t, storeID, "20.00")
	user := f.seedUser(t, nil)

	placed, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:    user.ID,
		AddressID: uuid.New(),
		Lines: []CartLine{
			{ProductID: pA.ID, Quantity: 2},
			{ProductID: pB.ID, Quantity: 1},
		},
		PaymentMethod: enums.PaymentMethodCard,
		IsMember:      true,
	})
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, "40.00", placed[0].Total)
}

func TestPlaceOrderMultiStoreChargesShippingOnce(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	storeA := uuid.New()
	storeB := uuid.New()
	pA := f.seedProduct(t, storeA, "10.00")
	pB := f.seedProduct(t, storeB, "20.00")
	user := f.seedUser(t, nil)

	placed, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:    user.ID,
		AddressID: uuid.New(),
		Lines: []CartLine{
			{ProductID: pA.ID, Quantity: 1},
			{ProductID: pB.ID, Quantity: 1},
		},
		PaymentMethod: enums.PaymentMethodCOD,
	})
	require.NoError(t, err)
	require.Len(t, placed, 2)

	// first-seen store absorbs the fee
	totals := totalsByStore(placed)
	assert.Equal(t, "15.00", totals[storeA])
	assert.Equal(t, "20.00", totals[storeB])
	assert.Equal(t, storeA, placed[0].StoreID)
}

func TestPlaceOrderCouponDiscountPerGroup(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	storeA := uuid.New()
	storeB := uuid.New()
	pA := f.seedProduct(t, storeA, "100.00")
	pB := f.seedProduct(t, storeB, "50.00")
	user := f.seedUser(t, nil)
	coupon := f.seedCoupon(t, "SAVE10", "10", false, false)

	placed, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:    user.ID,
		AddressID: uuid.New(),
		Lines: []CartLine{
			{ProductID: pA.ID, Quantity: 1},
			{ProductID: pB.ID, Quantity: 1},
		},
		CouponCode:    "SAVE10",
		PaymentMethod: enums.PaymentMethodCOD,
	})
	require.NoError(t, err)
	require.Len(t, placed, 2)

	// 100 − 10% + 5 = 95; 50 − 10% = 45
	totals := totalsByStore(placed)
	assert.Equal(t, "95.00", totals[storeA])
	assert.Equal(t, "45.00", totals[storeB])

	var rows []models.Order
	require.NoError(t, f.db.Order("created_at ASC").Find(&rows).Error)
	for _, row := range rows {
		assert.True(t, row.IsCouponUsed)
		require.NotNil(t, row.CouponID)
		assert.Equal(t, coupon.ID, *row.CouponID)
	}
}

func TestPlaceOrderNewUserCouponRejectedAfterFirstOrder(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	storeID := uuid.New()
	p := f.seedProduct(t, storeID, "10.00")
	user := f.seedUser(t, nil)
	f.seedCoupon(t, "WELCOME", "20", true, false)

	input := PlaceOrderInput{
		UserID:        user.ID,
		AddressID:     uuid.New(),
		Lines:         []CartLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: enums.PaymentMethodCOD,
	}

	// first order without coupon
	_, err := f.svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	// second attempt with the new-user coupon must fail and write nothing
	input.CouponCode = "WELCOME"
	_, err = f.svc.PlaceOrder(context.Background(), input)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeIneligible, appErr.Code())

	count, err := f.orders.CountByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	user := f.seedUser(t, nil)

	cases := []PlaceOrderInput{
		{UserID: user.ID, AddressID: uuid.New(), PaymentMethod: enums.PaymentMethodCOD},
		{UserID: user.ID, Lines: []CartLine{{ProductID: uuid.New(), Quantity: 1}}, PaymentMethod: enums.PaymentMethodCOD},
		{UserID: user.ID, AddressID: uuid.New(), Lines: []CartLine{{ProductID: uuid.New(), Quantity: 0}}, PaymentMethod: enums.PaymentMethodCOD},
	}
	for _, input := range cases {
		_, err := f.svc.PlaceOrder(context.Background(), input)
		require.Error(t, err)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
}

func TestPlaceOrderAllProductsMissing(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	user := f.seedUser(t, nil)

	_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        user.ID,
		AddressID:     uuid.New(),
		Lines:         []CartLine{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethod: enums.PaymentMethodCOD,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	storeID := uuid.New()
	p := f.seedProduct(t, storeID, "10.00")
	cart := types.CartContents{p.ID: 1}
	user := f.seedUser(t, cart)

	// sabotage the tail of the transaction
	require.NoError(t, f.db.Exec("DROP TABLE outbox_events").Error)

	_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        user.ID,
		AddressID:     uuid.New(),
		Lines:         []CartLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: enums.PaymentMethodCOD,
	})
	require.Error(t, err)

	count, err := f.orders.CountByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "no partial orders after rollback")

	reloaded, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Cart.IsEmpty(), "cart intact after rollback")
}

func TestListOrders(t *testing.T) {
	f := setupCheckout(t, defaultCheckoutConfig())
	storeID := uuid.New()
	p := f.seedProduct(t, storeID, "10.00")
	user := f.seedUser(t, nil)

	_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        user.ID,
		AddressID:     uuid.New(),
		Lines:         []CartLine{{ProductID: p.ID, Quantity: 2}},
		PaymentMethod: enums.PaymentMethodCOD,
	})
	require.NoError(t, err)

	views, err := f.svc.ListOrders(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "25.00", views[0].Total)
	require.Len(t, views[0].Items, 1)
	assert.Equal(t, p.Name, views[0].Items[0].Name)
	assert.Equal(t, 2, views[0].Items[0].Quantity)
}
