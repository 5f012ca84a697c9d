package catalog

import "testing"

func testItems() []Item {
	return []Item{
		{Name: "Bitcoin", UID: "bc1", FleaPrice: 500000, TraderPrice: 380000, TraderName: "Therapist"},
		{Name: "AK-74N assault rifle", UID: "ak1"},
		{ShortName: "Salewa", BsgID: "sw1", FleaPrice: 22000},
		{Name: "No identifier"},         // skipped: no external id
		{UID: "orphan", FleaPrice: 100}, // skipped: no name
		{},                              // skipped: nothing at all
	}
}

func TestLoadIndexesEveryValidRecord(t *testing.T) {
	st := NewStore(nil)
	if count := st.Load(testItems()); count != 3 {
		t.Fatalf("Load indexed %d items, want 3", count)
	}

	snap := st.Snapshot()
	cases := []struct {
		lookup string
		want   string
	}{
		{"Bitcoin", "Bitcoin"},
		{"bitcoin", "Bitcoin"},
		{"AK-74N assault rifle", "AK-74N assault rifle"},
		{"ak-74n assault rifle", "AK-74N assault rifle"},
		{"ak 74n assault rifle", "AK-74N assault rifle"}, // separator-normalized
		{"salewa", "Salewa"},                             // short-name fallback
	}
	for _, tc := range cases {
		it, ok := snap.LookupByLine(tc.lookup)
		if !ok {
			t.Errorf("LookupByLine(%q) found nothing", tc.lookup)
			continue
		}
		if it.DisplayName() != tc.want {
			t.Errorf("LookupByLine(%q) = %q, want %q", tc.lookup, it.DisplayName(), tc.want)
		}
	}

	if _, ok := snap.LookupByUID("bc1"); !ok {
		t.Error("LookupByUID(bc1) found nothing")
	}
	if _, ok := snap.LookupByUID("sw1"); !ok {
		t.Error("LookupByUID(sw1) found nothing via bsgId fallback")
	}
	if _, ok := snap.LookupByLine("no identifier"); ok {
		t.Error("record without external id should have been skipped")
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	st := NewStore(nil)
	st.Load(testItems())

	for _, line := range []string{"BITCOIN", "Bitcoin", "bItCoIn"} {
		if _, ok := st.Snapshot().LookupByLine(line); !ok {
			t.Errorf("LookupByLine(%q) should be case-insensitive", line)
		}
	}
}

func TestMergeLiveReplacesMarketFieldsOnly(t *testing.T) {
	st := NewStore(nil)
	st.Load(testItems())

	ok := st.MergeLive("Bitcoin", Item{
		Name:        "live record name is ignored",
		UID:         "different-uid",
		FleaPrice:   510000,
		TraderPrice: 390000,
		TraderName:  "Mechanic",
		Updated:     "2026-08-30T12:00:00Z",
	})
	if !ok {
		t.Fatal("MergeLive returned false for an existing item")
	}

	it, _ := st.Snapshot().LookupByName("Bitcoin")
	if it.FleaPrice != 510000 || it.TraderPrice != 390000 || it.TraderName != "Mechanic" {
		t.Errorf("market fields not replaced: %+v", it)
	}
	if it.Name != "Bitcoin" || it.UID != "bc1" {
		t.Errorf("identity fields must stay untouched, got name=%q uid=%q", it.Name, it.UID)
	}
	if it.Updated != "2026-08-30T12:00:00Z" {
		t.Errorf("Updated = %q", it.Updated)
	}
}

func TestMergeLiveUnknownNameIsNoop(t *testing.T) {
	st := NewStore(nil)
	st.Load(testItems())

	if st.MergeLive("Superseded item", Item{FleaPrice: 1}) {
		t.Error("MergeLive should report false for an absent name")
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	st := NewStore(nil)
	st.Load(testItems())
	old := st.Snapshot()

	st.MergeLive("Bitcoin", Item{FleaPrice: 999999})

	it, _ := old.LookupByName("Bitcoin")
	if it.FleaPrice != 500000 {
		t.Errorf("old snapshot mutated: FleaPrice = %d", it.FleaPrice)
	}
	it, _ = st.Snapshot().LookupByName("Bitcoin")
	if it.FleaPrice != 999999 {
		t.Errorf("new snapshot missing merge: FleaPrice = %d", it.FleaPrice)
	}
}

func TestPersistCallbackFires(t *testing.T) {
	var calls int
	var lastCount int
	st := NewStore(func(items []Item) {
		calls++
		lastCount = len(items)
	})

	st.Load(testItems())
	if calls != 1 || lastCount != 3 {
		t.Fatalf("after Load: calls=%d count=%d, want 1/3", calls, lastCount)
	}

	st.MergeLive("Bitcoin", Item{FleaPrice: 1})
	if calls != 2 || lastCount != 3 {
		t.Errorf("after MergeLive: calls=%d count=%d, want 2/3", calls, lastCount)
	}

	st.MergeLive("missing", Item{})
	if calls != 2 {
		t.Errorf("no-op merge must not persist, calls=%d", calls)
	}
}

func TestFullRefreshSurvivesConcurrentMerge(t *testing.T) {
	st := NewStore(nil)
	st.Load(testItems())

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				st.MergeLive("Bitcoin", Item{FleaPrice: 1})
			}
		}
	}()
	defer func() {
		close(stop)
		<-done
	}()

	// A refresh must never be clobbered by a merge that started against
	// the pre-refresh snapshot; the merge is the one that gets dropped.
	refreshed := append(testItems(), Item{Name: "Graphics card", UID: "gc1"})
	for i := 0; i < 500; i++ {
		st.Load(refreshed)
		if _, ok := st.Snapshot().LookupByName("Graphics card"); !ok {
			t.Fatalf("iteration %d: a stale merge overwrote the refreshed catalog", i)
		}
	}
}

func TestFullLoadReplacesCatalogWholesale(t *testing.T) {
	st := NewStore(nil)
	st.Load(testItems())
	st.Load([]Item{{Name: "Tushonka", UID: "t1"}})

	snap := st.Snapshot()
	if snap.Len() != 1 {
		t.Fatalf("Len = %d, want 1", snap.Len())
	}
	if _, ok := snap.LookupByLine("bitcoin"); ok {
		t.Error("items from the previous load must be gone")
	}
}
