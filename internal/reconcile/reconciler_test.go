package reconcile_test

import (
	"testing"

	"tshwane_places/internal/reconcile"
	"tshwane_places/internal/source"
)

func TestAddRow_FirstWriterWinsScalar(t *testing.T) {
	r := reconcile.New()
	r.AddRow("a", source.Row{"name": "The Zoo", "phone": "111"})
	r.AddRow("b", source.Row{"place_name": "zoo", "phone": "222"})

	rec := r.Records()["zoo"]
	if rec == nil {
		t.Fatal("record zoo missing")
	}
	if rec.Phone != "111" {
		t.Fatalf("phone = %q, want first writer 111", rec.Phone)
	}
}

func TestAddRow_LongDescriptionAlwaysWins(t *testing.T) {
	r := reconcile.New()
	r.AddRow("a", source.Row{"name": "Zoo", "short_description": "Nice place"})
	r.AddRow("b", source.Row{"name": "Zoo", "long_description": "A much longer description of the place."})
	// a later short description must not displace the long one
	r.AddRow("c", source.Row{"name": "Zoo", "description": "short again"})

	rec := r.Records()["zoo"]
	if rec.Description != "A much longer description of the place." {
		t.Fatalf("description = %q", rec.Description)
	}
}

func TestAddRow_CoordinateRangeRejection(t *testing.T) {
	r := reconcile.New()
	r.AddRow("a", source.Row{"name": "Zoo", "lat": "95", "lng": "200"})
	rec := r.Records()["zoo"]
	if rec.Latitude != nil {
		t.Fatalf("lat=95 must be discarded, got %v", *rec.Latitude)
	}
	if rec.Longitude != nil {
		t.Fatalf("lng=200 must be discarded, got %v", *rec.Longitude)
	}

	// a later in-range value still fills the slot
	r.AddRow("b", source.Row{"name": "Zoo", "latitude": "-25.73", "lon": "28.19"})
	if rec.Latitude == nil || *rec.Latitude != -25.73 {
		t.Fatalf("expected lat -25.73, got %v", rec.Latitude)
	}
	if rec.Longitude == nil || *rec.Longitude != 28.19 {
		t.Fatalf("expected lng 28.19, got %v", rec.Longitude)
	}
}

func TestAddRow_NumericParseFailureIsSilent(t *testing.T) {
	r := reconcile.New()
	r.AddRow("a", source.Row{"name": "Zoo", "rating": "four stars", "visitor_count": "lots"})
	rec := r.Records()["zoo"]
	if rec.Rating != nil || rec.VisitorCount != nil {
		t.Fatalf("unparseable numerics must be skipped: %+v", rec)
	}

	r.AddRow("b", source.Row{"name": "Zoo", "rating": "4,5", "visitor_count": "1200.0"})
	if rec.Rating == nil || *rec.Rating != 4.5 {
		t.Fatalf("decimal-comma rating not parsed: %v", rec.Rating)
	}
	if rec.VisitorCount == nil || *rec.VisitorCount != 1200 {
		t.Fatalf("float visitor count not parsed: %v", rec.VisitorCount)
	}
}

func TestAddRow_DataSourcesCountRepeats(t *testing.T) {
	r := reconcile.New()
	r.AddRow("a", source.Row{"name": "Zoo"})
	r.AddRow("a", source.Row{"name": "Zoo", "type": "attraction"})
	r.AddRow("b", source.Row{"name": "Zoo"})

	rec := r.Records()["zoo"]
	if len(rec.DataSources) != 3 {
		t.Fatalf("repeat sources must be kept, got %v", rec.DataSources)
	}
}

func TestAddRow_DropsUnresolvableRows(t *testing.T) {
	r := reconcile.New()
	r.AddRow("a", source.Row{"description": "no name column"})
	r.AddRow("a", source.Row{"name": "ab"}) // normalizes to 2 chars
	r.AddRow("a", source.Row{"name": "nan"})

	if len(r.Records()) != 0 {
		t.Fatalf("expected no records, got %v", r.Records())
	}
	if r.Dropped() != 3 {
		t.Fatalf("dropped = %d, want 3", r.Dropped())
	}
}

func TestAddTable_ThreeSourceScenario(t *testing.T) {
	r := reconcile.New()
	r.AddTable(source.Table{Source: "a", Rows: []source.Row{
		{"name": "The Zoo", "type": "attraction"},
	}})
	r.AddTable(source.Table{Source: "b", Rows: []source.Row{
		{"place_name": "zoo", "description": "A wonderful outdoor zoo with many animals."},
	}})
	r.AddTable(source.Table{Source: "c", Rows: []source.Row{
		{"title": "Zoo Restaurant", "type": "restaurant"},
	}})

	recs := r.Records()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(recs), recs)
	}

	zoo := recs["zoo"]
	if zoo == nil || zoo.Type != "attraction" || zoo.Description == "" {
		t.Fatalf("unexpected zoo record: %+v", zoo)
	}
	if zoo.Name != "The Zoo" {
		t.Fatalf("display name must keep the first raw form, got %q", zoo.Name)
	}
	if len(zoo.DataSources) != 2 || zoo.DataSources[0] != "a" || zoo.DataSources[1] != "b" {
		t.Fatalf("data sources = %v, want [a b]", zoo.DataSources)
	}

	rest := recs["zoo restaurant"]
	if rest == nil || rest.Type != "restaurant" {
		t.Fatalf("unexpected restaurant record: %+v", rest)
	}
}

func TestOrdered_FirstSightingOrder(t *testing.T) {
	r := reconcile.New()
	r.AddRow("a", source.Row{"name": "Freedom Park"})
	r.AddRow("a", source.Row{"name": "Union Buildings"})
	r.AddRow("b", source.Row{"name": "freedom park"}) // merge, keeps position

	ordered := r.Ordered()
	if len(ordered) != 2 {
		t.Fatalf("expected 2 ordered records, got %d", len(ordered))
	}
	if ordered[0].NormalizedKey != "freedom park" || ordered[1].NormalizedKey != "union buildings" {
		t.Fatalf("wrong order: %q, %q", ordered[0].NormalizedKey, ordered[1].NormalizedKey)
	}
}
