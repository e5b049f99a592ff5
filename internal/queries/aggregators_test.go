package queries

import (
	"testing"

	"seodash/internal/analysis"
	"seodash/internal/models"
	"seodash/internal/testutil"
)

func TestClientRankings_Scenario(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients: []models.Client{{Code: "foo", Name: "Foo", Domain: "foo.com"}},
		DomainKeywords: []models.DomainKeywordRecord{
			{ClientCode: "foo", Domain: "foo.com", Keyword: "widget", Location: "India", Position: testutil.Pos(2), SearchVolume: 1000},
			{ClientCode: "foo", Domain: "https://www.foo.com/", Keyword: "Widget", Location: "in", Position: testutil.Pos(6), SearchVolume: 1000},
			{ClientCode: "foo", Domain: "foo.com", Keyword: "gadget", Location: "global", Position: testutil.Pos(15), SearchVolume: 500},
			{ClientCode: "foo", Domain: "bar.com", Keyword: "gizmo", Location: "global", Position: testutil.Pos(1), SearchVolume: 900},
		},
	})

	got := mustExecute(t, e, "foo", "client-rankings").Data.(ClientRankings)

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"uniqueTop3India", got.UniqueTop3India, 1},
		{"uniqueTop10India", got.UniqueTop10India, 0},
		{"uniqueTop3Global", got.UniqueTop3Global, 0},
		{"uniqueTop10Global", got.UniqueTop10Global, 1},
		{"totalRankedKeywords", got.TotalRankedKeywords, 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if len(got.Keywords) != 2 {
		t.Fatalf("sample has %d keywords, want 2", len(got.Keywords))
	}
	if got.Keywords[0].Keyword != "widget" || got.Keywords[0].Position != 2 || got.Keywords[0].Location != models.LocationIndia {
		t.Errorf("first sample = %+v, want widget at 2 in india", got.Keywords[0])
	}
}

func TestClientRankings_SampleLimitAndSelfDomains(t *testing.T) {
	var records []models.DomainKeywordRecord
	for i, kw := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		records = append(records, serp("acmestore.com", kw, "india", testutil.Pos(1), int64(100*(i+1))))
	}
	e := newTestEngine(t, testutil.Fixtures{
		Clients:        []models.Client{acmeClient()},
		Competitors:    acmeCompetitors(),
		DomainKeywords: records,
	})

	got := mustRun(t, e, "acme", "client-rankings", models.QueryConfig{}).(ClientRankings)
	if got.UniqueTop3India != 7 {
		t.Errorf("uniqueTop3India = %d, want 7 (Self competitor domains count as owned)", got.UniqueTop3India)
	}
	if len(got.Keywords) != 5 || got.Keywords[0].Keyword != "g" {
		t.Errorf("sample = %+v, want the 5 highest-volume keywords starting with g", got.Keywords)
	}

	limited := mustRun(t, e, "acme", "client-rankings", models.QueryConfig{Limit: 2}).(ClientRankings)
	if len(limited.Keywords) != 2 {
		t.Errorf("limited sample has %d keywords, want 2", len(limited.Keywords))
	}
}

func TestKeywordsAbsence(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients:     []models.Client{acmeClient()},
		Competitors: acmeCompetitors(),
		KeywordAPI: []models.KeywordAPIRecord{
			tracked("widget", "india", 1000),
			tracked("gadget", "india", 500),
			tracked("gizmo", "global", 800),
			tracked("gizmo", "global", 650),
		},
		DomainKeywords: []models.DomainKeywordRecord{
			serp("acme.com", "widget", "india", testutil.Pos(3), 1000),
			serp("acme.in", "gadget", "india", testutil.Pos(25), 500),
			serp("rival.com", "gizmo", "global", testutil.Pos(4), 800),
			serp("other.com", "gizmo", "global", testutil.Pos(4), 800),
			serp("acme.com", "gizmo", "global", nil, 800),
		},
	})

	got := mustExecute(t, e, "acme", "keywords-absence").Data.(KeywordsAbsence)

	if got.TotalTracked != 3 || got.TotalAbsent != 2 {
		t.Fatalf("tracked/absent = %d/%d, want 3/2", got.TotalTracked, got.TotalAbsent)
	}

	gizmo := got.Keywords[0]
	if gizmo.Keyword != "gizmo" || gizmo.ClientRank != ">100" || gizmo.ClientPosition != nil {
		t.Errorf("first row = %+v, want gizmo with clientRank >100", gizmo)
	}
	if gizmo.TopCompetitor != "other.com" || gizmo.CompetitorRank == nil || *gizmo.CompetitorRank != 4 {
		t.Errorf("competitor = %q at %v, want other.com at 4 (tie broken by domain)", gizmo.TopCompetitor, gizmo.CompetitorRank)
	}

	gadget := got.Keywords[1]
	if gadget.Keyword != "gadget" || gadget.ClientRank != "25" {
		t.Errorf("second row = %+v, want gadget with clientRank 25", gadget)
	}

	india := mustRun(t, e, "acme", "keywords-absence", models.QueryConfig{Location: "India"}).(KeywordsAbsence)
	if india.TotalAbsent != 1 || india.Keywords[0].Keyword != "gadget" {
		t.Errorf("india filter = %+v, want only gadget", india)
	}
}

func TestMarketSize(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients:     []models.Client{acmeClient()},
		Competitors: acmeCompetitors(),
		DomainKeywords: []models.DomainKeywordRecord{
			serp("www.acme.com", "widget", "india", testutil.Pos(1), 1000),
			serp("acme.com", "widget", "global", testutil.Pos(3), 900),
			serp("rival.com", "widget", "india", testutil.Pos(2), 1000),
			serp("rival.com", "gadget", "global", testutil.Pos(1), 500),
			serp("old.com", "gadget", "global", testutil.Pos(2), 500),
		},
	})

	got := mustExecute(t, e, "acme", "market-size").Data.(MarketSize)

	if got.TotalMarketVolume != 1500 || got.UniqueKeywords != 2 {
		t.Errorf("market = %d over %d keywords, want 1500 over 2", got.TotalMarketVolume, got.UniqueKeywords)
	}
	if got.ClientTraffic != 300 {
		t.Errorf("ClientTraffic = %d, want 300", got.ClientTraffic)
	}
	want := analysis.Round2(float64(got.ClientTraffic) / float64(got.TotalMarketVolume) * 100)
	if got.ClientTrafficPercent != want || want != 20 {
		t.Errorf("ClientTrafficPercent = %v, want %v", got.ClientTrafficPercent, want)
	}

	if len(got.Competitors) != 2 {
		t.Fatalf("competitors = %+v, want rival and other (inactive and Self rows dropped)", got.Competitors)
	}
	rival := got.Competitors[0]
	if rival.Domain != "rival.com" || rival.Traffic != 325 || rival.TrafficPercent != 21.67 {
		t.Errorf("rival = %+v, want rival.com with 325 traffic at 21.67%%", rival)
	}
	if got.Competitors[1].Traffic != 0 || got.Competitors[1].TrafficPercent != 0 {
		t.Errorf("other = %+v, want zero traffic", got.Competitors[1])
	}
}

func TestMarketSize_ZeroVolume(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients:        []models.Client{acmeClient()},
		DomainKeywords: []models.DomainKeywordRecord{serp("acme.com", "widget", "india", testutil.Pos(1), 0)},
	})

	got := mustExecute(t, e, "acme", "market-size").Data.(MarketSize)
	if got.TotalMarketVolume != 0 || got.ClientTraffic != 0 || got.ClientTrafficPercent != 0 {
		t.Errorf("MarketSize = %+v, want zero share", got)
	}
}

func TestOpportunityMatrix(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients:     []models.Client{acmeClient()},
		Competitors: acmeCompetitors(),
		AIProfiles: []models.AIProfile{
			{ClientCode: "acme", IncludeTerms: []string{"buy"}, BrandTerms: []string{"acme"}},
		},
		DomainKeywords: []models.DomainKeywordRecord{
			serp("acme.com", "buy widget", "india", testutil.Pos(5), 1000),
			serp("acme.com", "buy gadget", "india", testutil.Pos(20), 800),
			serp("rival.com", "buy gizmo", "india", testutil.Pos(3), 600),
			serp("acme.com", "buy sprocket", "india", testutil.Pos(8), 400),
			serp("acme.com", "buy cog", "india", testutil.Pos(45), 200),
			serp("rival.com", "buy cog", "india", testutil.Pos(2), 200),
			serp("acme.com", "buy acme widget", "india", testutil.Pos(1), 900),
			serp("acme.com", "widget reviews", "india", testutil.Pos(2), 700),
			serp("other.com", "buy thing", "india", testutil.Pos(1), 5000),
		},
	})

	got := mustExecute(t, e, "acme", "keyword-opportunity-matrix").Data.(OpportunityMatrix)

	if got.VolumeThreshold != 800 {
		t.Errorf("VolumeThreshold = %d, want 800", got.VolumeThreshold)
	}

	sum := 0
	for _, n := range got.Summary.Counts {
		sum += n
	}
	if sum != got.Summary.Total || got.Summary.Total != 5 {
		t.Errorf("summary counts sum to %d, total %d, want 5", sum, got.Summary.Total)
	}
	if len(got.Summary.Counts) != 6 {
		t.Errorf("summary has %d types, want all 6", len(got.Summary.Counts))
	}

	want := []struct {
		keyword string
		typ     string
	}{
		{"buy widget", analysis.OpportunityCoreAssets},
		{"buy gadget", analysis.OpportunityLowHanging},
		{"buy sprocket", analysis.OpportunityDoingNothing},
		{"buy gizmo", analysis.OpportunityCanIgnore},
		{"buy cog", analysis.OpportunityCanIgnore},
	}
	if len(got.Keywords) != len(want) {
		t.Fatalf("got %d keywords, want %d", len(got.Keywords), len(want))
	}
	for i, w := range want {
		if got.Keywords[i].Keyword != w.keyword || got.Keywords[i].Type != w.typ {
			t.Errorf("row %d = %s/%s, want %s/%s", i, got.Keywords[i].Keyword, got.Keywords[i].Type, w.keyword, w.typ)
		}
	}
}

func TestTermBuckets_BrandBeatsExclude(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients: []models.Client{acmeClient()},
		AIProfiles: []models.AIProfile{{
			ClientCode:     "acme",
			BrandTerms:     []string{"acme"},
			ExcludeTerms:   []string{"acme", "free"},
			TermDictionary: map[string]string{"shoes": "include | BUY", "mystery": "sparkly"},
		}},
		KeywordAPI: []models.KeywordAPIRecord{
			tracked("acme shoes", "india", 300),
			tracked("free stuff", "india", 200),
			tracked("shoes", "global", 100),
			tracked("weather", "global", 50),
		},
	})

	got := mustExecute(t, e, "acme", "term-buckets").Data.(TermBuckets)

	byKeyword := make(map[string]ClassifiedKeyword)
	for _, k := range got.Keywords {
		byKeyword[k.Keyword] = k
	}

	tests := []struct {
		keyword  string
		bucket   models.Bucket
		strategy analysis.Strategy
	}{
		{"acme shoes", models.BucketBrand, analysis.StrategySubstring},
		{"free stuff", models.BucketExclude, analysis.StrategySubstring},
		{"shoes", models.BucketInclude, analysis.StrategyExact},
		{"weather", models.BucketUnassigned, analysis.StrategyDefault},
	}
	for _, tt := range tests {
		k := byKeyword[tt.keyword]
		if k.Bucket != tt.bucket || k.Strategy != tt.strategy {
			t.Errorf("Classify(%q) = %s/%s, want %s/%s", tt.keyword, k.Bucket, k.Strategy, tt.bucket, tt.strategy)
		}
	}

	if got.TotalKeywords != 4 {
		t.Errorf("TotalKeywords = %d, want 4", got.TotalKeywords)
	}
	for _, b := range got.Buckets {
		if b.Bucket == models.BucketBrand && (b.Count != 1 || b.TotalVolume != 300) {
			t.Errorf("brand bucket = %+v, want 1 keyword with 300 volume", b)
		}
	}
}

func TestBrandPower(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients:     []models.Client{acmeClient()},
		Competitors: acmeCompetitors(),
		AIProfiles:  []models.AIProfile{{ClientCode: "acme", BrandTerms: []string{"acme"}}},
		DomainKeywords: []models.DomainKeywordRecord{
			serp("acme.com", "acme login", "india", testutil.Pos(1), 100),
			serp("rival.com", "acme review", "india", testutil.Pos(1), 5000),
			serp("rival.com", "rivalry deals", "global", testutil.Pos(1), 2000),
			serp("rival.com", "rivalry deals", "india", testutil.Pos(3), 2500),
			serp("other.com", "rivalry deals", "india", testutil.Pos(4), 2500),
			serp("acme.com", "cheap shoes", "india", testutil.Pos(1), 9000),
			serp("acme.com", "acme store", "india", nil, 800),
		},
	})

	got := mustExecute(t, e, "acme", "brand-power").Data.(BrandPower)

	if got.BrandKeywords != 3 {
		t.Errorf("BrandKeywords = %d, want 3", got.BrandKeywords)
	}
	if len(got.Domains) != 3 {
		t.Fatalf("domains = %+v, want 3", got.Domains)
	}

	self := got.Domains[0]
	if !self.IsSelf || self.Domain != "acme.com" || self.Name != "Acme" || self.TotalVolume != 100 {
		t.Errorf("first domain = %+v, want the client's own domain first", self)
	}
	rival := got.Domains[1]
	if rival.Domain != "rival.com" || rival.Name != "Rival" || rival.TotalVolume != 7500 || rival.Keywords != 2 {
		t.Errorf("second domain = %+v, want rival.com with 7500 over 2 keywords", rival)
	}
	if got.Domains[2].Domain != "other.com" {
		t.Errorf("third domain = %q, want other.com", got.Domains[2].Domain)
	}
}

func TestDomainInfo(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients:     []models.Client{acmeClient()},
		Competitors: acmeCompetitors(),
		DomainKeywords: []models.DomainKeywordRecord{
			serp("acme.com", "widget", "india", testutil.Pos(2), 1000),
			serp("blog.acme.com", "gadget", "india", testutil.Pos(12), 100),
			serp("rival.com", "widget", "india", testutil.Pos(1), 1000),
		},
	})

	got := mustExecute(t, e, "acme", "domain-info").Data.(DomainInfo)

	wantOwned := []string{"acme.com", "acme.in", "acmestore.com"}
	if len(got.OwnedDomains) != len(wantOwned) {
		t.Fatalf("OwnedDomains = %v, want %v", got.OwnedDomains, wantOwned)
	}
	for i, d := range wantOwned {
		if got.OwnedDomains[i] != d {
			t.Errorf("OwnedDomains[%d] = %q, want %q", i, got.OwnedDomains[i], d)
		}
	}

	if len(got.Competitors) != 4 || got.Competitors[0].Domain != "rival.com" {
		t.Errorf("competitors = %+v, want 4 ordered by importance", got.Competitors)
	}

	if len(got.Domains) != 3 {
		t.Fatalf("domains = %+v, want 3", got.Domains)
	}
	first := got.Domains[0]
	if !first.IsSelf || first.Domain != "acme.com" || first.Top3 != 1 || first.EstimatedTraffic != 175 {
		t.Errorf("first domain = %+v, want acme.com with one top-3 keyword and 175 traffic", first)
	}
	if !got.Domains[1].IsSelf || got.Domains[1].Domain != "blog.acme.com" {
		t.Errorf("second domain = %+v, want the owned subdomain", got.Domains[1])
	}
}

func TestKeywordQuadrant(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients: []models.Client{acmeClient()},
		KeywordAPI: []models.KeywordAPIRecord{
			tracked("k1", "india", 100),
			tracked("k2", "india", 200),
			tracked("k3", "india", 300),
			tracked("k4", "india", 400),
			tracked("k5", "india", 500),
			tracked("k6", "india", 600),
			tracked("k7", "india", 700),
			tracked("k8", "india", 800),
			tracked("k9", "india", 900),
			tracked("k10", "india", 1000),
		},
		DomainKeywords: []models.DomainKeywordRecord{
			serp("acme.com", "k10", "india", testutil.Pos(1), 1000),
			serp("acme.com", "k2", "india", testutil.Pos(9), 200),
			serp("acme.com", "k5", "india", testutil.Pos(11), 500),
		},
	})

	got := mustExecute(t, e, "acme", "keyword-quadrant").Data.(QuadrantResult)

	if got.VolumeThreshold != 700 || got.Percentile != analysis.QuadrantPercentile {
		t.Errorf("threshold = %d at %v, want 700 at P70", got.VolumeThreshold, got.Percentile)
	}

	counts := make(map[string]int)
	for _, q := range got.Quadrants {
		counts[q.Name] = q.Count
	}
	want := map[string]int{
		QuadrantStrongholds:     1,
		QuadrantPriorityTargets: 3,
		QuadrantNicheWins:       1,
		QuadrantMonitor:         5,
	}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("%s = %d, want %d", name, counts[name], n)
		}
	}
	if got.Keywords[0].Keyword != "k10" || got.Keywords[0].Quadrant != QuadrantStrongholds {
		t.Errorf("first row = %+v, want k10 stronghold", got.Keywords[0])
	}
}

func TestCompetitorGap(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients:     []models.Client{acmeClient()},
		Competitors: acmeCompetitors(),
		DomainKeywords: []models.DomainKeywordRecord{
			serp("rival.com", "gap high", "india", testutil.Pos(3), 1000),
			serp("other.com", "gap low", "india", testutil.Pos(40), 100),
			serp("rival.com", "shared", "india", testutil.Pos(1), 5000),
			serp("acme.com", "shared", "india", testutil.Pos(50), 5000),
			serp("old.com", "inactive only", "india", testutil.Pos(1), 3000),
			serp("rival.com", "nobody", "india", nil, 400),
		},
	})

	got := mustExecute(t, e, "acme", "competitor-gap").Data.(QuadrantResult)

	if got.Total != 2 {
		t.Fatalf("Total = %d, want 2 (%+v)", got.Total, got.Keywords)
	}
	if got.VolumeThreshold != 1000 {
		t.Errorf("VolumeThreshold = %d, want 1000", got.VolumeThreshold)
	}
	high := got.Keywords[0]
	if high.Keyword != "gap high" || high.Quadrant != QuadrantCriticalGaps || high.Competitor != "Rival" {
		t.Errorf("first row = %+v, want gap high as a critical gap held by Rival", high)
	}
	low := got.Keywords[1]
	if low.Keyword != "gap low" || low.Quadrant != QuadrantMinorGaps || *low.Position != 40 {
		t.Errorf("second row = %+v, want gap low as a minor gap at 40", low)
	}
}

func TestBlueOcean(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{
		Clients: []models.Client{acmeClient()},
		KeywordAPI: []models.KeywordAPIRecord{
			tracked("open sea", "global", 2000),
			tracked("crowded", "global", 1500),
		},
		DomainKeywords: []models.DomainKeywordRecord{
			serp("someone.com", "taken", "global", testutil.Pos(4), 9000),
			serp("someone.com", "crowded", "global", testutil.Pos(15), 1500),
			serp("someone.com", "deep", "global", testutil.Pos(60), 100),
			serp("someone.com", "mid", "global", testutil.Pos(20), 50),
		},
	})

	got := mustExecute(t, e, "acme", "blue-ocean").Data.(BlueOcean)

	if got.Total != 4 {
		t.Fatalf("Total = %d, want 4 (keywords ranked in the top 10 are excluded)", got.Total)
	}
	if got.VolumeThreshold != 100 || got.Percentile != analysis.BlueOceanPercentile {
		t.Errorf("threshold = %d at %v, want 100 at P50", got.VolumeThreshold, got.Percentile)
	}

	want := []struct {
		keyword  string
		quadrant string
	}{
		{"open sea", QuadrantBlueOcean},
		{"deep", QuadrantBlueOcean},
		{"crowded", QuadrantEmerging},
		{"mid", QuadrantCrowdedNiche},
	}
	for i, w := range want {
		if got.Keywords[i].Keyword != w.keyword || got.Keywords[i].Quadrant != w.quadrant {
			t.Errorf("row %d = %s/%s, want %s/%s", i, got.Keywords[i].Keyword, got.Keywords[i].Quadrant, w.keyword, w.quadrant)
		}
	}

	if got.Keywords[0].PotentialTraffic != 600 {
		t.Errorf("PotentialTraffic = %d, want 600", got.Keywords[0].PotentialTraffic)
	}
	if got.TotalPotentialTraffic != 600+450+30+15 {
		t.Errorf("TotalPotentialTraffic = %d, want 1095", got.TotalPotentialTraffic)
	}
}

func TestDigitalFootprint(t *testing.T) {
	dir := testutil.WriteFixtures(t, testutil.Fixtures{
		Clients: []models.Client{acmeClient()},
		DomainKeywords: []models.DomainKeywordRecord{
			serp("en.wikipedia.org", "acme history", "global", testutil.Pos(2), 1000),
			serp("wikipedia.org", "acme founder", "global", testutil.Pos(7), 200),
			serp("youtube.com", "acme ads", "india", nil, 400),
		},
	})
	surfaces := fakeSurfaces{surfaces: []models.FootprintSurface{
		{Name: "Wikipedia", Domain: "wikipedia.org", Category: "reference", Active: true},
		{Name: "YouTube", Domain: "https://www.youtube.com", Category: "video", Active: true},
		{Name: "Orkut", Domain: "orkut.com", Active: false},
	}}
	e := newEngineWith(t, storeAt(dir), surfaces)

	got := mustExecute(t, e, "acme", "digital-footprint").Data.(DigitalFootprint)

	if got.SurfacesTracked != 2 || got.SurfacesPresent != 1 {
		t.Errorf("tracked/present = %d/%d, want 2/1", got.SurfacesTracked, got.SurfacesPresent)
	}
	wiki := got.Surfaces[0]
	if wiki.RankedKeywords != 2 || wiki.BestPosition == nil || *wiki.BestPosition != 2 {
		t.Errorf("wikipedia = %+v, want 2 keywords best at 2", wiki)
	}
	if wiki.EstimatedTraffic != 175+6 {
		t.Errorf("wikipedia traffic = %d, want 181", wiki.EstimatedTraffic)
	}
	if got.Surfaces[1].Domain != "youtube.com" || got.Surfaces[1].BestPosition != nil {
		t.Errorf("youtube = %+v, want normalized domain with no position", got.Surfaces[1])
	}
}

func TestDigitalFootprint_NoSettingsStore(t *testing.T) {
	e := newTestEngine(t, testutil.Fixtures{Clients: []models.Client{acmeClient()}})

	got := mustExecute(t, e, "acme", "digital-footprint").Data.(DigitalFootprint)
	if len(got.Surfaces) != 0 || got.SurfacesTracked != 0 {
		t.Errorf("DigitalFootprint = %+v, want empty", got)
	}
}
