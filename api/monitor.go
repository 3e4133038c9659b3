/*
monitor.go - Automated rest-compliance monitor

PURPOSE:
  Periodically analyzes the current month for every internal crew member
  and raises a dashboard notification for each member who misses weekly
  rest days.

DESIGN:
  - Runs a background goroutine with configurable scan interval
  - Fetches a fresh snapshot from the store on every scan
  - One WARNING notification per member and month, with a deterministic id
    (rest-<member>-<yyyy>-<mm>), so re-scans update it in place and a
    dismissed alert stays dismissed
  - Freelancers are not bound by the weekly rule and are skipped

CONFIGURATION:
  - ScanInterval: How often to scan (default: 1 hour)
  - Enabled: Whether the monitor is active (default: true)

USAGE:
  monitor := NewComplianceMonitor(store, crew.DefaultRule)
  monitor.Start()
  // ... later
  monitor.Stop()

SEE ALSO:
  - handlers.go: GetRestReport endpoint (same analysis on demand)
  - crew/rest.go: Rest-compliance analyzer
*/
package api

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warp/production-engine/crew"
	"github.com/warp/production-engine/records"
)

// ComplianceMonitor raises notifications for missed rest days.
type ComplianceMonitor struct {
	Store        records.Repository
	Rule         crew.Rule
	ScanInterval time.Duration
	Enabled      bool
	Now          func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewComplianceMonitor creates a new monitor.
func NewComplianceMonitor(store records.Repository, rule crew.Rule) *ComplianceMonitor {
	return &ComplianceMonitor{
		Store:        store,
		Rule:         rule,
		ScanInterval: 1 * time.Hour,
		Enabled:      true,
		Now:          time.Now,
	}
}

// Start begins the monitor.
func (m *ComplianceMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Enabled {
		log.Println("[Monitor] Disabled, not starting")
		return
	}
	if m.ticker != nil {
		return
	}

	m.ticker = time.NewTicker(m.ScanInterval)
	m.stop = make(chan struct{})
	m.wg.Add(1)

	go m.run(m.ticker.C, m.stop)

	log.Printf("[Monitor] Started with scan interval: %v", m.ScanInterval)
}

// Stop stops the monitor and waits for a running scan to finish.
func (m *ComplianceMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ticker != nil {
		m.ticker.Stop()
		close(m.stop)
		m.wg.Wait()
		m.ticker = nil
		log.Println("[Monitor] Stopped")
	}
}

func (m *ComplianceMonitor) run(tick <-chan time.Time, stop <-chan struct{}) {
	defer m.wg.Done()

	// Run immediately on start
	m.scan()

	for {
		select {
		case <-tick:
			m.scan()
		case <-stop:
			return
		}
	}
}

func (m *ComplianceMonitor) scan() {
	raised, err := m.RunNow(context.Background())
	if err != nil {
		log.Printf("[Monitor] Scan failed: %v", err)
		return
	}
	if raised > 0 {
		log.Printf("[Monitor] Completed: %d crew member(s) missing rest days", raised)
	}
}

// RunNow scans the current month immediately and returns how many members
// were flagged.
func (m *ComplianceMonitor) RunNow(ctx context.Context) (int, error) {
	now := m.Now()
	year, month := now.Year(), now.Month()

	members, err := m.Store.ListCrew(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list crew: %w", err)
	}
	jobs, err := m.Store.ListJobs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	raised := 0
	for _, member := range members {
		if member.Type != records.CrewInternal {
			continue
		}

		c, err := m.Rule.AnalyzeMember(member, year, month, jobs)
		if err != nil {
			log.Printf("[Monitor] Skipping %s: %v", member.ID, err)
			continue
		}
		if c.MissedRest == 0 {
			continue
		}

		if err := m.Store.SaveNotification(ctx, restNotification(member, c, now)); err != nil {
			log.Printf("[Monitor] Error saving notification for %s: %v", member.ID, err)
			continue
		}
		raised++
	}
	return raised, nil
}

// RestNotificationID is the id of the missed-rest alert for one member and
// month.
func RestNotificationID(memberID string, year int, month time.Month) string {
	return fmt.Sprintf("rest-%s-%04d-%02d", memberID, year, int(month))
}

func restNotification(member records.CrewMember, c crew.Compliance, now time.Time) records.Notification {
	return records.Notification{
		ID:    RestNotificationID(member.ID, c.Year, c.Month),
		Type:  records.NotifyWarning,
		Title: "Missed rest days",
		Message: fmt.Sprintf("%s is missing %d rest day(s) in %s %d (%d days worked)",
			member.Name, c.MissedRest, c.Month, c.Year, c.TotalWorked),
		Timestamp: now,
		LinkTo:    "/crew/" + member.ID,
	}
}
