package nanoleaf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	serviceName = "_nanoleafapi._tcp"
	domain      = "local."
)

// Device is a device found on the local network.
type Device struct {
	ID      string // hardware id from the TXT record, or instance name
	Name    string
	Address string // host:port
}

// DiscoverFunc is invoked for every device found during a discovery run.
type DiscoverFunc func(Device)

// Discover browses mDNS for devices periodically until ctx is cancelled,
// invoking found for each entry. The interval must be at least 5 seconds;
// shorter intervals are raised to 5 seconds with a warning. Each browse run
// lasts (interval - 1) seconds so runs don't overlap.
func Discover(ctx context.Context, logger *slog.Logger, interval time.Duration, found DiscoverFunc) error {
	if logger == nil {
		logger = slog.Default()
	}
	if interval < 5*time.Second {
		interval = 5 * time.Second
		logger.Warn("discovery interval too short, using minimum of 5 seconds")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	browse := func() error {
		resolver, err := zeroconf.NewResolver(nil)
		if err != nil {
			return fmt.Errorf("failed to create mDNS resolver: %w", err)
		}

		browseCtx, cancel := context.WithTimeout(ctx, interval-time.Second)
		defer cancel()

		entries := make(chan *zeroconf.ServiceEntry, 10)
		go func() {
			for entry := range entries {
				dev, ok := deviceFromEntry(entry)
				if !ok {
					continue
				}
				logger.Debug("discovery: found device", "id", dev.ID, "name", dev.Name, "address", dev.Address)
				found(dev)
			}
		}()

		if err := resolver.Browse(browseCtx, serviceName, domain, entries); err != nil {
			return fmt.Errorf("mDNS browse failed: %w", err)
		}
		<-browseCtx.Done()
		return nil
	}

	// First run immediately, then on every tick.
	if err := browse(); err != nil {
		logger.Error("discovery run failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("discovery stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := browse(); err != nil {
				logger.Error("discovery run failed", "error", err)
			}
		}
	}
}

// deviceFromEntry converts an mDNS entry into a Device. Entries without a
// resolvable IPv4 address are skipped.
func deviceFromEntry(entry *zeroconf.ServiceEntry) (Device, bool) {
	if len(entry.AddrIPv4) == 0 {
		return Device{}, false
	}

	dev := Device{
		Name:    entry.Instance,
		Address: fmt.Sprintf("%s:%d", entry.AddrIPv4[0], entry.Port),
	}
	for _, txt := range entry.Text {
		if id, ok := strings.CutPrefix(txt, "id="); ok {
			dev.ID = id
			break
		}
	}
	if dev.ID == "" {
		dev.ID = entry.Instance
	}
	return dev, true
}
