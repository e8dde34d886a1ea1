package vertex

// Relation names a link from one vertex to another.
// Any string is a valid relation; the constants below cover the common ones.
type Relation string

const (
	Next  Relation = "next"
	Prev  Relation = "prev"
	Left  Relation = "left"
	Right Relation = "right"
	First Relation = "first"
	Last  Relation = "last"
	To    Relation = "to"
	From  Relation = "from"
)

// firstGen is the generation a fresh slot starts at. Generation 0 is reserved
// for the unset Handle.
const firstGen uint32 = 1
