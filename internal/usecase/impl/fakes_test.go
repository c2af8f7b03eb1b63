package impl

import (
	"context"
	"sort"
	"strings"
	"sync"

	"condor/internal/domain/entity"
	"condor/internal/domain/repository"
	"condor/internal/domain/service"
)

// fakeStore is an in-memory backing store shared by the per-interface fake
// repositories below. Execute snapshots the maps and restores them when the
// callback fails, which lets tests assert rollback behavior without a
// database.
type fakeStore struct {
	mu sync.Mutex

	users         map[int64]*entity.User
	products      map[int64]*entity.Product
	cartItems     map[int64]*entity.CartItem
	methods       map[int64]*entity.PaymentMethod
	purchases     map[int64]*entity.Purchase
	notifications map[int64]*entity.Notification
	devices       map[int64]*entity.UserDevice

	nextID int64

	failOn map[string]error // operation name -> injected error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[int64]*entity.User),
		products:      make(map[int64]*entity.Product),
		cartItems:     make(map[int64]*entity.CartItem),
		methods:       make(map[int64]*entity.PaymentMethod),
		purchases:     make(map[int64]*entity.Purchase),
		notifications: make(map[int64]*entity.Notification),
		devices:       make(map[int64]*entity.UserDevice),
		nextID:        1,
		failOn:        make(map[string]error),
	}
}

func (s *fakeStore) nextSequence() int64 {
	id := s.nextID
	s.nextID++

	return id
}

func (s *fakeStore) fail(op string) error {
	return s.failOn[op]
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	cp.nextID = s.nextID
	for id, u := range s.users {
		c := *u
		cp.users[id] = &c
	}
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, item := range s.cartItems {
		c := *item
		cp.cartItems[id] = &c
	}
	for id, m := range s.methods {
		c := *m
		cp.methods[id] = &c
	}
	for id, p := range s.purchases {
		c := *p
		cp.purchases[id] = &c
	}
	for id, n := range s.notifications {
		c := *n
		cp.notifications[id] = &c
	}
	for id, d := range s.devices {
		c := *d
		cp.devices[id] = &c
	}

	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.users = from.users
	s.products = from.products
	s.cartItems = from.cartItems
	s.methods = from.methods
	s.purchases = from.purchases
	s.notifications = from.notifications
	s.devices = from.devices
	s.nextID = from.nextID
}

// seed helpers

func (s *fakeStore) putUser(user *entity.User) *entity.User {
	if user.ID == 0 {
		user.ID = s.nextSequence()
	}
	c := *user
	s.users[user.ID] = &c

	return user
}

func (s *fakeStore) putProduct(product *entity.Product) *entity.Product {
	if product.ID == 0 {
		product.ID = s.nextSequence()
	}
	c := *product
	s.products[product.ID] = &c

	return product
}

func (s *fakeStore) putCartItem(item *entity.CartItem) *entity.CartItem {
	if item.ID == 0 {
		item.ID = s.nextSequence()
	}
	c := *item
	c.Product = nil
	s.cartItems[item.ID] = &c

	return item
}

func (s *fakeStore) putMethod(method *entity.PaymentMethod) *entity.PaymentMethod {
	if method.ID == 0 {
		method.ID = s.nextSequence()
	}
	c := *method
	s.methods[method.ID] = &c

	return method
}

func (s *fakeStore) putNotification(notification *entity.Notification) *entity.Notification {
	if notification.ID == 0 {
		notification.ID = s.nextSequence()
	}
	c := *notification
	s.notifications[notification.ID] = &c

	return notification
}

// Execute implements repository.TransactionManager.
func (s *fakeStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.snapshot()
	if err := fn(fakeFactory{s}); err != nil {
		s.restore(saved)

		return err
	}

	return nil
}

// fakeFactory implements repository.RepositoryFactory over the store.
type fakeFactory struct{ store *fakeStore }

func (f fakeFactory) UserRepo() repository.UserRepository                   { return fakeUserRepo{f.store} }
func (f fakeFactory) ProductRepo() repository.ProductRepository             { return fakeProductRepo{f.store} }
func (f fakeFactory) CartRepo() repository.CartRepository                   { return fakeCartRepo{f.store} }
func (f fakeFactory) PaymentMethodRepo() repository.PaymentMethodRepository { return fakeMethodRepo{f.store} }
func (f fakeFactory) PurchaseRepo() repository.PurchaseRepository           { return fakePurchaseRepo{f.store} }
func (f fakeFactory) NotificationRepo() repository.NotificationRepository   { return fakeNotificationRepo{f.store} }

// fakeUserRepo implements repository.UserRepository.
type fakeUserRepo struct{ store *fakeStore }

func (r fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	c := *user

	return &c, nil
}

func (r fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			c := *user

			return &c, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if err := r.store.fail("user.Create"); err != nil {
		return err
	}
	r.store.putUser(user)

	return nil
}

func (r fakeUserRepo) CreditCashback(_ context.Context, userID int64, amount float64) error {
	if err := r.store.fail("user.CreditCashback"); err != nil {
		return err
	}
	user, ok := r.store.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.CashbackBalance += amount

	return nil
}

func (r fakeUserRepo) AdjustUnreadCount(_ context.Context, userID int64, delta int) error {
	if err := r.store.fail("user.AdjustUnreadCount"); err != nil {
		return err
	}
	user, ok := r.store.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.NotificationsCount += delta
	if user.NotificationsCount < 0 {
		user.NotificationsCount = 0
	}

	return nil
}

func (r fakeUserRepo) ResetUnreadCount(_ context.Context, userID int64) error {
	user, ok := r.store.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.NotificationsCount = 0

	return nil
}

// fakeProductRepo implements repository.ProductRepository.
type fakeProductRepo struct{ store *fakeStore }

func (r fakeProductRepo) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	c := *product

	return &c, nil
}

func (r fakeProductRepo) FindByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, product := range r.store.products {
		if product.Barcode == barcode {
			c := *product

			return &c, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r fakeProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		c := *product
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.store.putProduct(product)

	return nil
}

// fakeCartRepo implements repository.CartRepository.
type fakeCartRepo struct{ store *fakeStore }

func (r fakeCartRepo) ListByUser(_ context.Context, userID int64) ([]*entity.CartItem, error) {
	if err := r.store.fail("cart.ListByUser"); err != nil {
		return nil, err
	}
	out := make([]*entity.CartItem, 0)
	for _, item := range r.store.cartItems {
		if item.UserID != userID {
			continue
		}
		c := *item
		if product, ok := r.store.products[item.ProductID]; ok {
			pc := *product
			c.Product = &pc
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r fakeCartRepo) FindByID(_ context.Context, id int64) (*entity.CartItem, error) {
	item, ok := r.store.cartItems[id]
	if !ok {
		return nil, repository.ErrCartItemNotFound
	}
	c := *item

	return &c, nil
}

func (r fakeCartRepo) FindByUserAndProduct(_ context.Context, userID, productID int64) (*entity.CartItem, error) {
	for _, item := range r.store.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			c := *item

			return &c, nil
		}
	}

	return nil, repository.ErrCartItemNotFound
}

func (r fakeCartRepo) Create(_ context.Context, item *entity.CartItem) error {
	if err := r.store.fail("cart.Create"); err != nil {
		return err
	}
	r.store.putCartItem(item)

	return nil
}

func (r fakeCartRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	item, ok := r.store.cartItems[id]
	if !ok {
		return repository.ErrCartItemNotFound
	}
	item.Quantity = quantity

	return nil
}

func (r fakeCartRepo) Delete(_ context.Context, id int64) error {
	delete(r.store.cartItems, id)

	return nil
}

func (r fakeCartRepo) ClearByUser(_ context.Context, userID int64) error {
	if err := r.store.fail("cart.ClearByUser"); err != nil {
		return err
	}
	for id, item := range r.store.cartItems {
		if item.UserID == userID {
			delete(r.store.cartItems, id)
		}
	}

	return nil
}

// fakeMethodRepo implements repository.PaymentMethodRepository.
type fakeMethodRepo struct{ store *fakeStore }

func (r fakeMethodRepo) ListByUser(_ context.Context, userID int64) ([]*entity.PaymentMethod, error) {
	out := make([]*entity.PaymentMethod, 0)
	for _, method := range r.store.methods {
		if method.UserID == userID {
			c := *method
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r fakeMethodRepo) FindByID(_ context.Context, id int64) (*entity.PaymentMethod, error) {
	method, ok := r.store.methods[id]
	if !ok {
		return nil, repository.ErrPaymentMethodNotFound
	}
	c := *method

	return &c, nil
}

func (r fakeMethodRepo) FindPreferredByUser(_ context.Context, userID int64) (*entity.PaymentMethod, error) {
	for _, method := range r.store.methods {
		if method.UserID == userID && method.Preferred {
			c := *method

			return &c, nil
		}
	}

	return nil, repository.ErrPaymentMethodNotFound
}

func (r fakeMethodRepo) Create(_ context.Context, method *entity.PaymentMethod) error {
	r.store.putMethod(method)

	return nil
}

func (r fakeMethodRepo) SetPreferred(_ context.Context, id int64, preferred bool) error {
	method, ok := r.store.methods[id]
	if !ok {
		return repository.ErrPaymentMethodNotFound
	}
	method.Preferred = preferred

	return nil
}

func (r fakeMethodRepo) ClearPreferredByUser(_ context.Context, userID int64) error {
	for _, method := range r.store.methods {
		if method.UserID == userID {
			method.Preferred = false
		}
	}

	return nil
}

func (r fakeMethodRepo) Delete(_ context.Context, id int64) error {
	delete(r.store.methods, id)

	return nil
}

// fakePurchaseRepo implements repository.PurchaseRepository.
type fakePurchaseRepo struct{ store *fakeStore }

func (r fakePurchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	if err := r.store.fail("purchase.Create"); err != nil {
		return err
	}
	if purchase.ID == 0 {
		purchase.ID = r.store.nextSequence()
	}
	for _, item := range purchase.Items {
		if item.ID == 0 {
			item.ID = r.store.nextSequence()
		}
		item.PurchaseID = purchase.ID
	}
	c := *purchase
	r.store.purchases[purchase.ID] = &c

	return nil
}

func (r fakePurchaseRepo) FindByID(_ context.Context, id int64) (*entity.Purchase, error) {
	purchase, ok := r.store.purchases[id]
	if !ok {
		return nil, repository.ErrPurchaseNotFound
	}
	c := *purchase

	return &c, nil
}

func (r fakePurchaseRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Purchase, error) {
	out := make([]*entity.Purchase, 0)
	for _, purchase := range r.store.purchases {
		if purchase.UserID == userID {
			c := *purchase
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

// fakeNotificationRepo implements repository.NotificationRepository.
type fakeNotificationRepo struct{ store *fakeStore }

func (r fakeNotificationRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Notification, error) {
	out := make([]*entity.Notification, 0)
	for _, notification := range r.store.notifications {
		if notification.UserID == userID {
			c := *notification
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (r fakeNotificationRepo) FindByID(_ context.Context, id int64) (*entity.Notification, error) {
	notification, ok := r.store.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}
	c := *notification

	return &c, nil
}

func (r fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	if err := r.store.fail("notification.Create"); err != nil {
		return err
	}
	r.store.putNotification(notification)

	return nil
}

func (r fakeNotificationRepo) MarkRead(_ context.Context, id int64) error {
	notification, ok := r.store.notifications[id]
	if !ok {
		return repository.ErrNotificationNotFound
	}
	notification.Read = true

	return nil
}

func (r fakeNotificationRepo) MarkAllReadByUser(_ context.Context, userID int64) (int64, error) {
	var flipped int64
	for _, notification := range r.store.notifications {
		if notification.UserID == userID && !notification.Read {
			notification.Read = true
			flipped++
		}
	}

	return flipped, nil
}

// fakeDeviceRepo implements repository.DeviceRepository.
type fakeDeviceRepo struct{ store *fakeStore }

func (r fakeDeviceRepo) Upsert(_ context.Context, device *entity.UserDevice) error {
	for _, existing := range r.store.devices {
		if existing.FCMToken == device.FCMToken {
			existing.UserID = device.UserID
			existing.Platform = device.Platform
			device.ID = existing.ID

			return nil
		}
	}
	if device.ID == 0 {
		device.ID = r.store.nextSequence()
	}
	c := *device
	r.store.devices[device.ID] = &c

	return nil
}

func (r fakeDeviceRepo) ListByUser(_ context.Context, userID int64) ([]*entity.UserDevice, error) {
	out := make([]*entity.UserDevice, 0)
	for _, device := range r.store.devices {
		if device.UserID == userID {
			c := *device
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r fakeDeviceRepo) DeleteByToken(_ context.Context, token string) error {
	for id, device := range r.store.devices {
		if device.FCMToken == token {
			delete(r.store.devices, id)
		}
	}

	return nil
}

// fakePublisher records published purchase events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*service.PurchaseEvent
	err    error
}

func (p *fakePublisher) PublishPurchaseEvent(_ context.Context, event *service.PurchaseEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []*service.PurchaseEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.PurchaseEvent(nil), p.events...)
}

// fakePixService returns a canned payload without touching CRC or PNG encoding.
type fakePixService struct{}

func (fakePixService) BuildPayload(amount float64, txid string) (string, error) {
	return "payload", nil
}

func (fakePixService) GenerateQR(amount float64, txid string) ([]byte, error) {
	return []byte("png"), nil
}

// fakeHasher is a reversible stand-in for bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// fakeTokenService issues predictable tokens.
type fakeTokenService struct{}

func (fakeTokenService) GenerateToken(userID int64) (string, error) {
	return "token", nil
}

func (fakeTokenService) ValidateToken(tokenString string) (int64, error) {
	return 0, nil
}
