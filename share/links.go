package share

import (
	"fmt"
	"strings"
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

const (
	DefaultLinkTTL = 600 * time.Second
)

var (
	linkTTL   = DefaultLinkTTL
	linkCache = ttlworker.NewCache[string, types.IntakeLink](DefaultLinkTTL)
)

// SetLinkTTL rebuilds the link cache with the given lifetime. Call at
// startup before any link is created.
func SetLinkTTL(d time.Duration) {
	if d <= 0 {
		d = DefaultLinkTTL
	}
	linkTTL = d
	linkCache = ttlworker.NewCache[string, types.IntakeLink](d)
}

// CreateIntakeLink mints a short-lived URL that posts files into the
// given domain.
func CreateIntakeLink(domainID, label, baseURL string, port int) types.IntakeLink {
	id := tool.GenerateShortLinkID()
	now := time.Now()
	link := types.IntakeLink{
		ID:        id,
		DomainID:  domainID,
		Label:     label,
		URL:       buildLinkURL(baseURL, port, id),
		CreatedAt: now,
		ExpiresAt: now.Add(linkTTL),
	}
	linkCache.Set(id, link)
	tool.DefaultLogger.Infof("Created intake link %s for domain %s", link.URL, domainID)
	return link
}

// buildLinkURL prefers the configured public base URL, otherwise the
// first LAN address so other devices can reach the endpoint.
func buildLinkURL(baseURL string, port int, id string) string {
	if baseURL != "" {
		return fmt.Sprintf("%s/i/%s", strings.TrimRight(baseURL, "/"), id)
	}
	host := "localhost"
	if addrs := tool.LocalAddresses(); len(addrs) > 0 {
		host = addrs[0]
	}
	return fmt.Sprintf("http://%s:%d/i/%s", host, port, id)
}

// ResolveIntakeLink looks up a live link by ID.
func ResolveIntakeLink(id string) (types.IntakeLink, bool) {
	link := linkCache.Get(id)
	return link, link.ID != ""
}

// CloseIntakeLink expires the link immediately.
func CloseIntakeLink(id string) bool {
	if _, ok := ResolveIntakeLink(id); !ok {
		return false
	}
	linkCache.Delete(id)
	tool.DefaultLogger.Infof("Closed intake link %s", id)
	return true
}

// ListIntakeLinks returns every link that has not expired yet.
func ListIntakeLinks() []types.IntakeLink {
	links := make([]types.IntakeLink, 0)
	err := linkCache.Range(func(k string, v types.IntakeLink) error {
		links = append(links, v)
		return nil
	})
	if err != nil {
		return nil
	}
	return links
}
