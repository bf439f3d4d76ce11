package main

import "testing"

func TestAnalyticsFlushOnStop(t *testing.T) {
	db := openTestDB(t)
	a := NewAnalytics(db)
	a.Track(EvtRunStart, "r1", "")
	a.Track(EvtPlayerHit, "r1", `{"lives":4}`)
	a.Track(EvtPlayerHit, "r1", `{"lives":3}`)
	a.Track(EvtRunEnd, "r1", `{"duration":12.5}`)
	a.Track(EvtRunEnd, "r2", `{"duration":7.5}`)
	a.Stop()

	counts, err := a.EventCounts(1)
	if err != nil {
		t.Fatal(err)
	}
	if counts[EvtPlayerHit] != 2 || counts[EvtRunStart] != 1 || counts[EvtRunEnd] != 2 {
		t.Errorf("unexpected counts %v", counts)
	}

	avg, err := a.AvgRunDuration(1)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 10 {
		t.Errorf("expected average duration 10, got %v", avg)
	}
}

func TestAnalyticsActiveRuns(t *testing.T) {
	a := NewAnalytics(nil)
	defer a.Stop()
	a.SetActiveRuns(3)
	if a.ActiveRuns() != 3 {
		t.Errorf("expected 3 active runs, got %d", a.ActiveRuns())
	}
	// without a database events are dropped at flush
	a.Track(EvtPause, "", "")
}

func TestNilAnalytics(t *testing.T) {
	var a *Analytics
	a.Track(EvtRunStart, "r", "")
	a.SetActiveRuns(1)
	if a.ActiveRuns() != 0 {
		t.Error("nil analytics should report 0")
	}
	if counts, err := a.EventCounts(1); counts != nil || err != nil {
		t.Error("nil analytics should return nothing")
	}
}
