package deck

// Categories is the fixed, ordered category vocabulary. The first entry is
// the default for records that were never categorized.
var Categories = []string{
	"Uncategorized",
	"Science",
	"Literature",
	"Art",
	"History",
	"Geography",
	"Sports",
	"Pop Culture",
	"Misc",
}

// DefaultCategory returns the category assigned to records without an
// explicit annotation.
func DefaultCategory() string {
	return Categories[0]
}

// Annotations is a sparse mapping from record position to annotation. An
// absent entry reads as the zero annotation: not flagged, default category.
// Updates are pure: they return a new map and leave the receiver untouched.
type Annotations map[int]Annotation

// Get returns the annotation for a position, synthesizing the default when
// no entry exists.
func (a Annotations) Get(pos int) Annotation {
	if ann, ok := a[pos]; ok {
		return ann
	}
	return Annotation{Review: false, Category: DefaultCategory()}
}

// SetCategory returns a copy of the map with the category at pos replaced.
// The category is not validated against the known vocabulary; any string is
// accepted.
func (a Annotations) SetCategory(pos int, category string) Annotations {
	next := a.clone()
	ann := a.Get(pos)
	ann.Category = category
	next[pos] = ann
	return next
}

// ToggleReview returns a copy of the map with the review flag at pos
// flipped.
func (a Annotations) ToggleReview(pos int) Annotations {
	next := a.clone()
	ann := a.Get(pos)
	ann.Review = !ann.Review
	next[pos] = ann
	return next
}

func (a Annotations) clone() Annotations {
	next := make(Annotations, len(a)+1)
	for pos, ann := range a {
		next[pos] = ann
	}
	return next
}
