package services

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/repository"
)

// In-memory repository fakes shared across the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email || u.Phone == phone {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id string, updates bson.M) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		u.Name = name
	}
	return u, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Rating = average
	u.RatingCount = count
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeProductRepo) Find(ctx context.Context, filter repository.ProductFilter) ([]*models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Product
	for _, p := range r.products {
		if filter.SellerID != "" && p.SellerID != filter.SellerID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) UpdateFields(ctx context.Context, id string, updates bson.M) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		p.Name = name
	}
	return p, nil
}

func (r *fakeProductRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Stock < quantity {
		return repository.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (r *fakeProductRepo) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Rating = models.RatingSummary{Average: average, Count: count}
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	seq    int
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*models.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeOrderRepo) Find(ctx context.Context, filter repository.OrderFilter) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Order
	for _, o := range r.orders {
		if filter.BuyerID != "" && o.BuyerID != filter.BuyerID {
			continue
		}
		if filter.SellerID != "" && o.SellerID != filter.SellerID {
			continue
		}
		if filter.RiderID != "" && o.RiderID != filter.RiderID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return repository.ErrNotFound
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) FindDeliveredByRiders(ctx context.Context, riderIDs []string) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(riderIDs))
	for _, id := range riderIDs {
		ids[id] = true
	}
	var out []*models.Order
	for _, o := range r.orders {
		if o.Status == models.OrderDelivered && ids[o.RiderID] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) NextOrderNumber(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return fmt.Sprintf("SL%d", r.seq), nil
}

type fakeClusterRepo struct {
	mu       sync.Mutex
	clusters map[string]*models.RiderCluster
}

func newFakeClusterRepo(clusters ...*models.RiderCluster) *fakeClusterRepo {
	r := &fakeClusterRepo{clusters: make(map[string]*models.RiderCluster)}
	for _, c := range clusters {
		r.clusters[c.ID] = c
	}
	return r
}

func (r *fakeClusterRepo) Create(ctx context.Context, cluster *models.RiderCluster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clusters {
		if c.LeaderID == cluster.LeaderID {
			return repository.ErrDuplicate
		}
	}
	r.clusters[cluster.ID] = cluster
	return nil
}

func (r *fakeClusterRepo) FindByID(ctx context.Context, id string) (*models.RiderCluster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clusters[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeClusterRepo) FindByLeader(ctx context.Context, leaderID string) (*models.RiderCluster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clusters {
		if c.LeaderID == leaderID {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeClusterRepo) Find(ctx context.Context, filter repository.ClusterFilter) ([]*models.RiderCluster, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.RiderCluster
	for _, c := range r.clusters {
		if c.SubscriptionStatus != models.SubscriptionActive {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeClusterRepo) Update(ctx context.Context, cluster *models.RiderCluster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clusters[cluster.ID]; !ok {
		return repository.ErrNotFound
	}
	r.clusters[cluster.ID] = cluster
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	failCreate    bool
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return fmt.Errorf("store down")
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) Find(ctx context.Context, filter repository.NotificationFilter) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.Recipient != filter.RecipientID {
			continue
		}
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.Recipient == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for _, n := range r.notifications {
		if n.Recipient == recipientID && idSet[n.ID] {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.Recipient == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) byRecipient(recipientID string) []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.Recipient == recipientID {
			out = append(out, n)
		}
	}
	return out
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings []*models.Rating
}

func (r *fakeRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ratings {
		if existing.OrderID == rating.OrderID && existing.ReviewerID == rating.ReviewerID && existing.RevieweeID == rating.RevieweeID {
			return repository.ErrDuplicate
		}
	}
	r.ratings = append(r.ratings, rating)
	return nil
}

func (r *fakeRatingRepo) ExistsFor(ctx context.Context, orderID, reviewerID, revieweeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ratings {
		if existing.OrderID == orderID && existing.ReviewerID == reviewerID && existing.RevieweeID == revieweeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRatingRepo) FindByReviewee(ctx context.Context, revieweeID string) ([]*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Rating
	for _, existing := range r.ratings {
		if existing.RevieweeID == revieweeID {
			out = append(out, existing)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID && existing.OrderID == review.OrderID {
			return repository.ErrDuplicate
		}
	}
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) ExistsFor(ctx context.Context, productID, userID, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.ProductID == productID && existing.UserID == userID && existing.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) FindByProduct(ctx context.Context, productID string, rating, page, limit int) ([]*models.Review, int64, error) {
	reviews, err := r.AllByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if rating > 0 {
		var filtered []*models.Review
		for _, rev := range reviews {
			if rev.Rating == rating {
				filtered = append(filtered, rev)
			}
		}
		reviews = filtered
	}
	return reviews, int64(len(reviews)), nil
}

func (r *fakeReviewRepo) AllByProduct(ctx context.Context, productID string) ([]*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Review
	for _, existing := range r.reviews {
		if existing.ProductID == productID {
			out = append(out, existing)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) IncrementHelpful(ctx context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.ID == id {
			existing.HelpfulVotes++
			return existing, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeDisputeRepo struct {
	mu       sync.Mutex
	disputes []*models.Dispute
}

func (r *fakeDisputeRepo) Create(ctx context.Context, dispute *models.Dispute) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disputes = append(r.disputes, dispute)
	return nil
}

func (r *fakeDisputeRepo) FindByReporter(ctx context.Context, reporterID string) ([]*models.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Dispute
	for _, d := range r.disputes {
		if d.ReporterID == reporterID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[string]*models.Chat
}

func newFakeChatRepo(chats ...*models.Chat) *fakeChatRepo {
	r := &fakeChatRepo{chats: make(map[string]*models.Chat)}
	for _, c := range chats {
		r.chats[c.ID] = c
	}
	return r
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *models.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[chat.ID] = chat
	return nil
}

func (r *fakeChatRepo) FindByParticipantsAndOrder(ctx context.Context, userID, participantID, orderID string) (*models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chats {
		if c.OrderID != orderID {
			continue
		}
		if containsAll(c.Participants, userID, participantID) {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeChatRepo) FindByUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Chat
	for _, c := range r.chats {
		if c.IsActive && containsAll(c.Participants, userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) FindByIDForUser(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok || !containsAll(c.Participants, userID) {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, chatID string, msg models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Messages = append(c.Messages, msg)
	c.LastMessage = &models.LastMessage{Content: msg.Content, SenderID: msg.SenderID, Timestamp: msg.CreatedAt}
	return nil
}

func (r *fakeChatRepo) MarkMessagesRead(ctx context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range c.Messages {
		if c.Messages[i].SenderID != userID {
			c.Messages[i].IsRead = true
		}
	}
	return nil
}

func containsAll(haystack []string, needles ...string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// fakePublisher records pushes and can be told to fail.
type fakePublisher struct {
	mu     sync.Mutex
	sent   []fakePush
	failed bool
}

type fakePush struct {
	UserID  string
	Event   string
	Payload interface{}
}

func (p *fakePublisher) SendToUser(ctx context.Context, userID, event string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed {
		return fmt.Errorf("channel down")
	}
	p.sent = append(p.sent, fakePush{UserID: userID, Event: event, Payload: payload})
	return nil
}

func (p *fakePublisher) pushes() []fakePush {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]fakePush(nil), p.sent...)
}

// fakeNotifier records fan-out calls made by the order and cluster services.
type fakeNotifier struct {
	mu         sync.Mutex
	newOrders  []string
	statusSent []string
}

func (n *fakeNotifier) NotifyNewOrder(ctx context.Context, sellerID, orderID, buyerName string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newOrders = append(n.newOrders, orderID)
}

func (n *fakeNotifier) NotifyOrderUpdate(ctx context.Context, orderID, buyerID, sellerID, riderID, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statusSent = append(n.statusSent, status)
}
