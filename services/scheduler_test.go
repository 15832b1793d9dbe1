package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realhome/realhome_backend/models"
)

// fakeWishlistStore keeps wishlists in memory and mimics the conditional
// MarkNotified update of the Mongo repository.
type fakeWishlistStore struct {
	mu        sync.Mutex
	wishlists []models.Wishlist
	listErr   error
	markErr   error
	marked    []primitive.ObjectID
}

func (s *fakeWishlistStore) ListPending(ctx context.Context) ([]models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var pending []models.Wishlist
	for _, w := range s.wishlists {
		if !w.Notified {
			pending = append(pending, w)
		}
	}
	return pending, nil
}

func (s *fakeWishlistStore) MarkNotified(ctx context.Context, id, listingID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	for i := range s.wishlists {
		if s.wishlists[i].ID == id {
			if s.wishlists[i].Notified {
				return errors.New("wishlist is not pending notification")
			}
			s.wishlists[i].Notified = true
			s.marked = append(s.marked, listingID)
			return nil
		}
	}
	return errors.New("wishlist not found")
}

func (s *fakeWishlistStore) get(id primitive.ObjectID) models.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wishlists {
		if w.ID == id {
			return w
		}
	}
	return models.Wishlist{}
}

type fakeListingStore struct {
	listings []models.Listing
	err      error
}

func (s *fakeListingStore) ListActive(ctx context.Context) ([]models.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}

// fakeNotifier records deliveries and can be told to fail for given recipients
type fakeNotifier struct {
	mu        sync.Mutex
	calls     []string
	failFor   map[string]bool
	callDelay time.Duration
}

func (n *fakeNotifier) Notify(ctx context.Context, email string, listing models.Listing) error {
	if n.callDelay > 0 {
		time.Sleep(n.callDelay)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, email)
	if n.failFor[email] {
		return errors.New("smtp connection refused")
	}
	return nil
}

func (n *fakeNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func pendingWishlist(email string) models.Wishlist {
	return models.Wishlist{
		ID:           primitive.NewObjectID(),
		UserID:       primitive.NewObjectID(),
		ContactEmail: email,
	}
}

func TestWishlistEngine_NotifiesAtMostOnceAcrossTicks(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")
	wishlist.MaxPrice = floatPtr(500000)
	wishlist.Bedrooms = intPtr(3)

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	notifier := &fakeNotifier{}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)

	for i := 0; i < 3; i++ {
		engine.RunTick(context.Background())
	}

	assert.Equal(t, 1, notifier.callCount(), "a wishlist must never be notified twice")
	require.Len(t, wishlists.marked, 1)
	assert.True(t, wishlists.get(wishlist.ID).Notified)
}

func TestWishlistEngine_NoMatchNoSideEffect(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")
	wishlist.Bedrooms = intPtr(5)

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	notifier := &fakeNotifier{}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)
	engine.RunTick(context.Background())

	assert.Zero(t, notifier.callCount())
	assert.False(t, wishlists.get(wishlist.ID).Notified)
}

func TestWishlistEngine_DeliveryFailureRetriedNextTick(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	notifier := &fakeNotifier{failFor: map[string]bool{"buyer@example.com": true}}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)

	engine.RunTick(context.Background())
	assert.Equal(t, 1, notifier.callCount())
	assert.False(t, wishlists.get(wishlist.ID).Notified, "failed delivery must not be recorded as delivered")

	// Transport recovers; the next tick retries and commits
	notifier.mu.Lock()
	notifier.failFor = nil
	notifier.mu.Unlock()

	engine.RunTick(context.Background())
	assert.Equal(t, 2, notifier.callCount())
	assert.True(t, wishlists.get(wishlist.ID).Notified)
}

func TestWishlistEngine_FailureIsolation(t *testing.T) {
	wishlistA := pendingWishlist("a@example.com")
	wishlistB := pendingWishlist("b@example.com")

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlistA, wishlistB}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	notifier := &fakeNotifier{failFor: map[string]bool{"a@example.com": true}}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)
	engine.RunTick(context.Background())

	assert.False(t, wishlists.get(wishlistA.ID).Notified, "A's failure must leave A pending")
	assert.True(t, wishlists.get(wishlistB.ID).Notified, "A's failure must not block B")
}

func TestWishlistEngine_MarkFailureDoesNotResendSameTick(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")

	wishlists := &fakeWishlistStore{
		wishlists: []models.Wishlist{wishlist},
		markErr:   errors.New("write conflict"),
	}
	// Two qualifying listings: a commit failure must still not trigger a
	// second send within the tick.
	listings := &fakeListingStore{listings: []models.Listing{testListing(), testListing()}}
	notifier := &fakeNotifier{}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)
	engine.RunTick(context.Background())

	assert.Equal(t, 1, notifier.callCount())
	assert.False(t, wishlists.get(wishlist.ID).Notified)
}

func TestWishlistEngine_StoreReadFailureAbortsTick(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")

	t.Run("wishlist read fails", func(t *testing.T) {
		wishlists := &fakeWishlistStore{
			wishlists: []models.Wishlist{wishlist},
			listErr:   errors.New("connection reset"),
		}
		listings := &fakeListingStore{listings: []models.Listing{testListing()}}
		notifier := &fakeNotifier{}

		engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)
		engine.RunTick(context.Background())

		assert.Zero(t, notifier.callCount(), "no partial snapshot may be acted upon")
	})

	t.Run("listing read fails", func(t *testing.T) {
		wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
		listings := &fakeListingStore{err: errors.New("connection reset")}
		notifier := &fakeNotifier{}

		engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)
		engine.RunTick(context.Background())

		assert.Zero(t, notifier.callCount())
		assert.False(t, wishlists.get(wishlist.ID).Notified)
	})
}

func TestWishlistEngine_SkipsWishlistWithoutContactEmail(t *testing.T) {
	wishlist := pendingWishlist("")

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	notifier := &fakeNotifier{}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)
	engine.RunTick(context.Background())

	assert.Zero(t, notifier.callCount())
	assert.False(t, wishlists.get(wishlist.ID).Notified)
}

func TestWishlistEngine_OverlappingTicksSendOnce(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	// The delay holds the first tick open while the second one is triggered
	notifier := &fakeNotifier{callDelay: 100 * time.Millisecond}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine.RunTick(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, notifier.callCount(), "overlapping ticks must not both send")
	assert.True(t, wishlists.get(wishlist.ID).Notified)
}

func TestWishlistEngine_PicksSomeQualifyingListing(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")
	wishlist.City = strPtr("Johannesburg")

	first := testListing()
	second := testListing()
	second.ID = primitive.NewObjectID()
	second.Suburb = "Sandton"
	first.ID = primitive.NewObjectID()

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{first, second}}
	notifier := &fakeNotifier{}

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second)
	engine.RunTick(context.Background())

	// Store order carries no contractual sort, so any qualifying listing is a
	// valid pick - but exactly one notification goes out.
	assert.Equal(t, 1, notifier.callCount())
	require.Len(t, wishlists.marked, 1)
	assert.Contains(t, []primitive.ObjectID{first.ID, second.ID}, wishlists.marked[0])
}

func TestWishlistEngine_StartStopLifecycle(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	notifier := &fakeNotifier{}

	engine := NewWishlistEngine(wishlists, listings, notifier, 10*time.Millisecond)
	engine.Start()

	require.Eventually(t, func() bool {
		return notifier.callCount() == 1
	}, time.Second, 5*time.Millisecond, "engine should notify after the first tick")

	engine.Stop()
	callsAfterStop := notifier.callCount()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, callsAfterStop, notifier.callCount(), "no ticks may run after Stop returns")
}

func TestWishlistEngine_NotifiesListenersAfterCommit(t *testing.T) {
	wishlist := pendingWishlist("buyer@example.com")

	wishlists := &fakeWishlistStore{wishlists: []models.Wishlist{wishlist}}
	listings := &fakeListingStore{listings: []models.Listing{testListing()}}
	notifier := &fakeNotifier{}

	var gotWishlist models.Wishlist
	var gotListing models.Listing
	listener := matchListenerFunc(func(w models.Wishlist, l models.Listing) {
		gotWishlist = w
		gotListing = l
	})

	engine := NewWishlistEngine(wishlists, listings, notifier, time.Second, listener)
	engine.RunTick(context.Background())

	assert.Equal(t, wishlist.ID, gotWishlist.ID)
	assert.Equal(t, "Family home with garden", gotListing.Title)
}

type matchListenerFunc func(models.Wishlist, models.Listing)

func (f matchListenerFunc) WishlistMatched(w models.Wishlist, l models.Listing) { f(w, l) }
