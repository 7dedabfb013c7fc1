package rewards

import "context"

// Unlocker triggers the sticker unlock check for one user.
type Unlocker interface {
	Unlock(ctx context.Context, userID string) (int, error)
}

// NewUnlocker returns a Client for url, or Noop when url is empty.
func NewUnlocker(url string) Unlocker {
	if url == "" {
		return Noop{}
	}
	return New(url)
}

var (
	_ Unlocker = (*Client)(nil)
	_ Unlocker = Noop{}
)
