package deck

import "testing"

func twoSlideDoc() *Document {
	return &Document{
		Title: "Test Deck",
		Slides: []Slide{
			{ID: NewSlideID(), Layout: LayoutTitle, Title: "One", Content: []string{"a"}},
			{ID: NewSlideID(), Layout: LayoutContent, Title: "Two", Content: []string{"b", "c"}},
		},
	}
}

func TestReplaceBumpsEpoch(t *testing.T) {
	s := NewStore()
	if s.Epoch() != 0 {
		t.Fatalf("new store epoch = %d, want 0", s.Epoch())
	}
	e1 := s.Replace(twoSlideDoc())
	e2 := s.Replace(twoSlideDoc())
	if e1 != 1 || e2 != 2 {
		t.Fatalf("epochs = %d, %d, want 1, 2", e1, e2)
	}
	if s.SlideCount() != 2 {
		t.Fatalf("slide count = %d, want 2", s.SlideCount())
	}
}

func TestDocumentReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Replace(twoSlideDoc())
	doc := s.Document()
	doc.Slides[0].Title = "mutated"
	doc.Slides[0].Content[0] = "mutated"
	fresh := s.Document()
	if fresh.Slides[0].Title != "One" || fresh.Slides[0].Content[0] != "a" {
		t.Fatalf("mutating a returned document leaked into the store: %+v", fresh.Slides[0])
	}
}

func TestMergeImage(t *testing.T) {
	s := NewStore()
	epoch := s.Replace(twoSlideDoc())
	doc := s.Document()
	id := doc.Slides[1].ID

	if !s.MergeImage(id, "data:image/png;base64,AAAA", epoch) {
		t.Fatalf("merge with current epoch should apply")
	}
	got, _ := s.Slide(id)
	if got.ImageData != "data:image/png;base64,AAAA" {
		t.Fatalf("image not attached: %q", got.ImageData)
	}
	if got.Title != "Two" || len(got.Content) != 2 {
		t.Fatalf("merge touched fields other than the image: %+v", got)
	}

	// Re-applying the same payload is idempotent.
	if !s.MergeImage(id, "data:image/png;base64,AAAA", epoch) {
		t.Fatalf("repeat merge should still apply")
	}
}

func TestMergeImageStaleEpoch(t *testing.T) {
	s := NewStore()
	epoch := s.Replace(twoSlideDoc())
	id := s.Document().Slides[0].ID

	s.Replace(twoSlideDoc())
	if s.MergeImage(id, "data:image/png;base64,AAAA", epoch) {
		t.Fatalf("merge under a superseded epoch must be a no-op")
	}
	for _, slide := range s.Document().Slides {
		if slide.ImageData != "" {
			t.Fatalf("stale merge wrote an image: %+v", slide)
		}
	}
}

func TestMergeImageDeletedSlide(t *testing.T) {
	s := NewStore()
	epoch := s.Replace(twoSlideDoc())
	id := s.Document().Slides[0].ID
	if !s.DeleteSlide(id) {
		t.Fatalf("delete should find the slide")
	}
	if s.MergeImage(id, "data:image/png;base64,AAAA", epoch) {
		t.Fatalf("merge into a deleted slide must be a no-op")
	}
	if s.SlideCount() != 1 {
		t.Fatalf("slide count after delete = %d, want 1", s.SlideCount())
	}
}

func TestMergeImageClearedStore(t *testing.T) {
	s := NewStore()
	epoch := s.Replace(twoSlideDoc())
	id := s.Document().Slides[0].ID
	s.Clear()
	if s.MergeImage(id, "data:image/png;base64,AAAA", epoch) {
		t.Fatalf("merge into a cleared store must be a no-op")
	}
	if s.Document() != nil {
		t.Fatalf("cleared store should have no document")
	}
	if s.Epoch() != epoch {
		t.Fatalf("clear must not bump the epoch")
	}
}

func TestUpdateSlideKeepsIdentity(t *testing.T) {
	s := NewStore()
	s.Replace(twoSlideDoc())
	id := s.Document().Slides[0].ID

	found := s.UpdateSlide(id, func(slide *Slide) {
		slide.Title = "Renamed"
		slide.ID = "hijacked"
	})
	if !found {
		t.Fatalf("update should find the slide")
	}
	got, ok := s.Slide(id)
	if !ok || got.Title != "Renamed" {
		t.Fatalf("update did not apply: %+v", got)
	}
	if s.UpdateSlide("missing", func(*Slide) {}) {
		t.Fatalf("update of an unknown identity should report false")
	}
}

func TestUpdateSlidePanickingMutator(t *testing.T) {
	s := NewStore()
	s.Replace(twoSlideDoc())
	id := s.Document().Slides[0].ID

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("mutator panic should propagate")
			}
		}()
		s.UpdateSlide(id, func(slide *Slide) {
			slide.Title = "half done"
			panic("boom")
		})
	}()

	// The lock must be released and the slide untouched.
	got, ok := s.Slide(id)
	if !ok || got.Title != "One" {
		t.Fatalf("panicking mutator left a partial slide: %+v", got)
	}
	if !s.UpdateSlide(id, func(slide *Slide) { slide.Title = "after" }) {
		t.Fatalf("store unusable after a mutator panic")
	}
}

func TestDeleteSlidePreservesOrder(t *testing.T) {
	s := NewStore()
	doc := &Document{Slides: []Slide{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C"},
	}}
	s.Replace(doc)
	s.DeleteSlide("b")
	got := s.Document()
	if len(got.Slides) != 2 || got.Slides[0].ID != "a" || got.Slides[1].ID != "c" {
		t.Fatalf("unexpected order after delete: %+v", got.Slides)
	}
}

func TestObserverFiresOnMutation(t *testing.T) {
	s := NewStore()
	var calls int
	s.Subscribe(func() { calls++ })

	s.Replace(twoSlideDoc())
	id := s.Document().Slides[0].ID
	s.UpdateSlide(id, func(slide *Slide) { slide.Title = "x" })
	s.Clear()
	s.Clear() // already empty, no change, no callback
	if calls != 3 {
		t.Fatalf("observer calls = %d, want 3", calls)
	}
}

func TestNewSlideIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewSlideID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty slide id %q", id)
		}
		seen[id] = true
	}
}
