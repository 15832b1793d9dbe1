// services/scheduler.go
package services

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/realhome/realhome_backend/models"
)

// WishlistStore is the engine's view of wishlist persistence. MarkNotified
// must be a single atomic conditional update so a record can never be flagged
// twice, even if the store is mutated externally mid-tick.
type WishlistStore interface {
	ListPending(ctx context.Context) ([]models.Wishlist, error)
	MarkNotified(ctx context.Context, id, listingID primitive.ObjectID) error
}

// ListingStore is the engine's read-only view of the listing inventory
type ListingStore interface {
	ListActive(ctx context.Context) ([]models.Listing, error)
}

// MatchListener receives a wishlist match after the notified flag has been
// committed. Listeners are best-effort side channels (in-app records, push,
// websocket); their failures never affect the committed state.
type MatchListener interface {
	WishlistMatched(wishlist models.Wishlist, listing models.Listing)
}

// WishlistEngine periodically reconciles pending wishlists against the current
// listing inventory and notifies each buyer at most once per wishlist. All
// matching state is recomputed from scratch every tick; the notified flag is
// the only persistent memory kept between ticks.
type WishlistEngine struct {
	wishlists WishlistStore
	listings  ListingStore
	notifier  Notifier
	listeners []MatchListener
	interval  time.Duration
	logger    *log.Logger

	// tickMu guarantees at most one tick runs at a time. Two concurrent ticks
	// could both observe the same pending wishlist and both send before either
	// commits, violating the at-most-once invariant.
	tickMu sync.Mutex

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWishlistEngine creates a wishlist engine. The interval defaults to 10s
// when zero or negative.
func NewWishlistEngine(wishlists WishlistStore, listings ListingStore, notifier Notifier, interval time.Duration, listeners ...MatchListener) *WishlistEngine {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &WishlistEngine{
		wishlists: wishlists,
		listings:  listings,
		notifier:  notifier,
		listeners: listeners,
		interval:  interval,
		logger:    log.New(os.Stdout, "[WISHLIST] ", log.LstdFlags),
	}
}

// Start launches the background reconciliation loop
func (e *WishlistEngine) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	go e.run(ctx)
	e.logger.Printf("wishlist engine started, scanning every %s", e.interval)
}

// Stop cancels the loop and waits for any in-flight tick to finish, so no
// wishlist is left in an ambiguous state on shutdown.
func (e *WishlistEngine) Stop() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
	e.logger.Println("wishlist engine stopped")
}

func (e *WishlistEngine) run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.RunTick(ctx)
		}
	}
}

// RunTick executes one reconciliation pass. If a previous tick is still in
// flight the new one is skipped, never run in parallel. A failure to read
// either store aborts the whole tick; no partial snapshot is acted upon.
func (e *WishlistEngine) RunTick(ctx context.Context) {
	if !e.tickMu.TryLock() {
		e.logger.Println("previous tick still running, skipping this one")
		return
	}
	defer e.tickMu.Unlock()

	wishlists, err := e.wishlists.ListPending(ctx)
	if err != nil {
		e.logger.Printf("failed to load pending wishlists, aborting tick: %v", err)
		return
	}

	listings, err := e.listings.ListActive(ctx)
	if err != nil {
		e.logger.Printf("failed to load listings, aborting tick: %v", err)
		return
	}

	if len(wishlists) == 0 || len(listings) == 0 {
		return
	}

	for i := range wishlists {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.processWishlist(ctx, wishlists[i], listings)
	}
}

// processWishlist scans the inventory snapshot for the first listing matching
// the wishlist and performs the notify-then-commit sequence. Which listing is
// picked among multiple qualifying ones is arbitrary: it follows store order,
// which carries no contractual sort. Every failure leaves the record pending
// for the next tick and never escapes to abort the surrounding tick.
func (e *WishlistEngine) processWishlist(ctx context.Context, wishlist models.Wishlist, listings []models.Listing) {
	if wishlist.Notified {
		return
	}

	if wishlist.ContactEmail == "" {
		e.logger.Printf("wishlist %s has no contact email, skipping", wishlist.ID.Hex())
		return
	}

	for i := range listings {
		if !MatchesListing(listings[i], wishlist) {
			continue
		}
		listing := listings[i]

		// Delivery must be confirmed before the notified flag is committed.
		// A failed send leaves the record pending and it is retried on the
		// next tick, possibly against a different matching listing.
		if err := e.notifier.Notify(ctx, wishlist.ContactEmail, listing); err != nil {
			e.logger.Printf("failed to notify %s for wishlist %s: %v",
				wishlist.ContactEmail, wishlist.ID.Hex(), err)
			return
		}

		if err := e.wishlists.MarkNotified(ctx, wishlist.ID, listing.ID); err != nil {
			// Delivered but not recorded: the record stays pending and may be
			// re-notified on a later tick. Accepted limitation; never re-send
			// within the same tick.
			e.logger.Printf("failed to record notification for wishlist %s: %v",
				wishlist.ID.Hex(), err)
			return
		}

		e.logger.Printf("wishlist %s matched listing %s, notified %s",
			wishlist.ID.Hex(), listing.ID.Hex(), wishlist.ContactEmail)

		for _, listener := range e.listeners {
			listener.WishlistMatched(wishlist, listing)
		}
		return
	}
}
