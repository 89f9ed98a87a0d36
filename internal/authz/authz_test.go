package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
)

type fakeUsers struct {
	users map[uuid.UUID]*models.User
	err   error
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeStores struct {
	stores map[uuid.UUID]*models.Store
	err    error
}

func (f *fakeStores) FindByOwner(_ context.Context, ownerID uuid.UUID) (*models.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	store, ok := f.stores[ownerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func adminConfig(emails string) config.AdminConfig {
	return config.AdminConfig{Emails: emails}
}

func TestAdminAllowListMembership(t *testing.T) {
	adminID := uuid.New()
	otherID := uuid.New()
	users := &fakeUsers{users: map[uuid.UUID]*models.User{
		adminID: {ID: adminID, Email: "ops@example.com"},
		otherID: {ID: otherID, Email: "buyer@example.com"},
	}}
	svc := NewService(users, &fakeStores{}, adminConfig("ops@example.com, root@example.com"), nil)

	assert.True(t, svc.Admin(context.Background(), adminID))
	assert.False(t, svc.Admin(context.Background(), otherID))
}

func TestAdminCaseSensitive(t *testing.T) {
	userID := uuid.New()
	users := &fakeUsers{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "Ops@Example.com"},
	}}
	svc := NewService(users, &fakeStores{}, adminConfig("ops@example.com"), nil)

	assert.False(t, svc.Admin(context.Background(), userID))
}

func TestAdminFailClosed(t *testing.T) {
	svc := NewService(&fakeUsers{err: assert.AnError}, &fakeStores{}, adminConfig("ops@example.com"), nil)
	assert.False(t, svc.Admin(context.Background(), uuid.New()))

	// unknown user
	svc = NewService(&fakeUsers{users: map[uuid.UUID]*models.User{}}, &fakeStores{}, adminConfig("ops@example.com"), nil)
	assert.False(t, svc.Admin(context.Background(), uuid.New()))

	// empty allow-list denies everyone
	userID := uuid.New()
	svc = NewService(&fakeUsers{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "ops@example.com"},
	}}, &fakeStores{}, adminConfig(""), nil)
	assert.False(t, svc.Admin(context.Background(), userID))

	// nil user id
	assert.False(t, svc.Admin(context.Background(), uuid.Nil))
}

func TestSellerApprovedStore(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	stores := &fakeStores{stores: map[uuid.UUID]*models.Store{
		ownerID: {ID: storeID, OwnerID: ownerID, Status: enums.StoreStatusApproved},
	}}
	svc := NewService(&fakeUsers{}, stores, adminConfig(""), nil)

	got, ok := svc.Seller(context.Background(), ownerID)
	assert.True(t, ok)
	assert.Equal(t, storeID, got)
}

func TestSellerNonApprovedStatuses(t *testing.T) {
	for _, status := range []enums.StoreStatus{
		enums.StoreStatusPending,
		enums.StoreStatusRejected,
		enums.StoreStatusSuspended,
	} {
		ownerID := uuid.New()
		stores := &fakeStores{stores: map[uuid.UUID]*models.Store{
			ownerID: {ID: uuid.New(), OwnerID: ownerID, Status: status},
		}}
		svc := NewService(&fakeUsers{}, stores, adminConfig(""), nil)

		got, ok := svc.Seller(context.Background(), ownerID)
		assert.False(t, ok, status)
		assert.Equal(t, uuid.Nil, got)
	}
}

func TestSellerFailClosed(t *testing.T) {
	svc := NewService(&fakeUsers{}, &fakeStores{err: assert.AnError}, adminConfig(""), nil)
	got, ok := svc.Seller(context.Background(), uuid.New())
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, got)

	// no store at all
	svc = NewService(&fakeUsers{}, &fakeStores{stores: map[uuid.UUID]*models.Store{}}, adminConfig(""), nil)
	_, ok = svc.Seller(context.Background(), uuid.New())
	assert.False(t, ok)

	// nil user id
	_, ok = svc.Seller(context.Background(), uuid.Nil)
	assert.False(t, ok)
}
