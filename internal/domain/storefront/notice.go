// internal/domain/storefront/notice.go
package storefront

import (
	"sync"
	"time"
)

// DefaultNoticeDuration is how long the "added to cart" flag stays on
const DefaultNoticeDuration = 2 * time.Second

// Notice is the transient "added to cart" flag. Flagging again supersedes the
// pending reset, and Stop cancels it so no callback touches a disposed session.
type Notice struct {
	mu        sync.Mutex
	duration  time.Duration
	timer     *time.Timer
	productID string
	gen       uint64
}

// NewNotice creates a notice that resets after d
func NewNotice(d time.Duration) *Notice {
	if d <= 0 {
		d = DefaultNoticeDuration
	}
	return &Notice{duration: d}
}

// Flag marks the product as just added and re-arms the reset
func (n *Notice) Flag(productID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.productID = productID
	n.timer = time.AfterFunc(n.duration, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen == gen {
			n.productID = ""
			n.timer = nil
		}
	})
}

// Current returns the flagged product id, or ""
func (n *Notice) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.productID
}

// Active reports whether the product is currently flagged
func (n *Notice) Active(productID string) bool {
	return productID != "" && n.Current() == productID
}

// Stop cancels any pending reset and clears the flag
func (n *Notice) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.productID = ""
}
