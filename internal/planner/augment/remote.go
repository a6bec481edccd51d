// Package augment delegates slot placement to an external scheduling
// service behind the same Allocator contract as the built-in engine. The
// service's output is trusted only after it passes the full contract
// check; anything else falls back to the deterministic allocator.
package augment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jdmerritt/planweave/internal/logger"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/planner"
	"github.com/jdmerritt/planweave/internal/utils"
)

// Remote calls the augmentation service and falls back to the wrapped
// allocator on any error, timeout, or contract violation. The fallback
// path never surfaces an augmentation error to the caller.
type Remote struct {
	url      string
	timeout  time.Duration
	client   *http.Client
	fallback planner.Allocator
}

func New(url string, timeout time.Duration, fallback planner.Allocator) *Remote {
	return &Remote{
		url:      url,
		timeout:  timeout,
		client:   &http.Client{},
		fallback: fallback,
	}
}

func (r *Remote) Allocate(ctx context.Context, req planner.Request) (planner.Result, error) {
	res, err := r.call(ctx, req)
	if err != nil {
		logger.Warn("Augmentation unavailable, falling back to builtin allocator", "error", err)
		return r.fallback.Allocate(ctx, req)
	}
	return res, nil
}

func (r *Remote) call(ctx context.Context, req planner.Request) (planner.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return planner.Result{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return planner.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return planner.Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return planner.Result{}, fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	var res planner.Result
	dec := json.NewDecoder(resp.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&res); err != nil {
		return planner.Result{}, fmt.Errorf("malformed response: %w", err)
	}

	if err := validate(req, res); err != nil {
		return planner.Result{}, fmt.Errorf("response violates allocation contract: %w", err)
	}
	return res, nil
}

// validate enforces the allocator output contract on a remote response:
// every referenced item exists in the request, every request item appears
// exactly once in slots or unscheduled, every slot parses, stays within
// day bounds, and intersects neither another slot nor a busy or lunch
// interval.
func validate(req planner.Request, res planner.Result) error {
	known := make(map[string]models.ItemType)
	for _, item := range req.Routines {
		known[item.Occurrence.ID] = models.ItemRoutine
	}
	for _, task := range req.Tasks {
		known[task.ID] = models.ItemTask
	}

	occupied := make([]planner.Interval, 0, len(req.Busy)+len(res.Slots)+1)
	occupied = append(occupied, req.Busy...)
	if req.Lunch != nil {
		occupied = append(occupied, *req.Lunch)
	}

	seen := make(map[string]bool)
	for _, slot := range res.Slots {
		itemType, ok := known[slot.ItemID]
		if !ok {
			return fmt.Errorf("slot references unknown item %q", slot.ItemID)
		}
		if slot.ItemType != itemType {
			return fmt.Errorf("slot for %q has wrong item type %q", slot.ItemID, slot.ItemType)
		}
		if seen[slot.ItemID] {
			return fmt.Errorf("item %q placed more than once", slot.ItemID)
		}
		seen[slot.ItemID] = true

		start, err := utils.ParseTimeToMinutes(slot.Start)
		if err != nil {
			return fmt.Errorf("slot for %q has bad start %q", slot.ItemID, slot.Start)
		}
		end, err := utils.ParseTimeToMinutes(slot.End)
		if err != nil {
			return fmt.Errorf("slot for %q has bad end %q", slot.ItemID, slot.End)
		}
		iv := planner.Interval{Start: start, End: end}
		if start >= end {
			return fmt.Errorf("slot for %q is empty (%s-%s)", slot.ItemID, slot.Start, slot.End)
		}
		if start < req.DayStart || end > req.DayEnd {
			return fmt.Errorf("slot for %q falls outside day bounds", slot.ItemID)
		}
		for _, o := range occupied {
			if iv.Overlaps(o) {
				return fmt.Errorf("slot for %q overlaps another interval", slot.ItemID)
			}
		}
		occupied = append(occupied, iv)
	}

	for _, u := range res.Unscheduled {
		if _, ok := known[u.ItemID]; !ok {
			return fmt.Errorf("unscheduled entry references unknown item %q", u.ItemID)
		}
		if seen[u.ItemID] {
			return fmt.Errorf("item %q listed more than once", u.ItemID)
		}
		if u.Reason == "" {
			return fmt.Errorf("unscheduled entry for %q has no reason", u.ItemID)
		}
		seen[u.ItemID] = true
	}

	// A response may not drop items: anything it did not place must carry
	// an unscheduled entry.
	for id := range known {
		if !seen[id] {
			return fmt.Errorf("item %q missing from response", id)
		}
	}

	return nil
}
