package entity

// UNLocode is the United Nations location code that uniquely identifies a location
type UNLocode string

// Location is a stop on a cargo's journey, such as origin, destination or a
// carrier movement endpoint. It is uniquely identified by its UN locode.
type Location struct {
	UNLocode UNLocode
	Name     string
}

// LocationUnknown is the sentinel for an unresolved location
var LocationUnknown = Location{UNLocode: "XXXXX", Name: "Unknown location"}

// SameIdentityAs reports whether both locations carry the same UN locode
func (l Location) SameIdentityAs(other Location) bool {
	return l.UNLocode == other.UNLocode
}

func (l Location) String() string {
	return l.Name + " [" + string(l.UNLocode) + "]"
}
