package model

// PredicateMethod names a query operation understood by the property store
type PredicateMethod string

const (
	MethodEqual            PredicateMethod = "equal"
	MethodGreaterThanEqual PredicateMethod = "greaterThanEqual"
	MethodLessThanEqual    PredicateMethod = "lessThanEqual"
	MethodSearch           PredicateMethod = "search"
	MethodOr               PredicateMethod = "or"
	MethodOrderDesc        PredicateMethod = "orderDesc"
	MethodLimit            PredicateMethod = "limit"
)

// Property attributes that predicates may reference
const (
	AttrType      = "type"
	AttrName      = "name"
	AttrAddress   = "address"
	AttrPrice     = "price"
	AttrArea      = "area"
	AttrBedrooms  = "bedrooms"
	AttrBathrooms = "bathrooms"
	AttrCreatedAt = "created_at"
)

// Predicate is one clause of a property list query
type Predicate struct {
	Method    PredicateMethod `json:"method"`
	Attribute string          `json:"attribute,omitempty"`
	Values    []any           `json:"values,omitempty"`
	Queries   []Predicate     `json:"queries,omitempty"`
}

// Equal matches attribute == value
func Equal(attribute string, value any) Predicate {
	return Predicate{Method: MethodEqual, Attribute: attribute, Values: []any{value}}
}

// GreaterThanEqual matches attribute >= value
func GreaterThanEqual(attribute string, value any) Predicate {
	return Predicate{Method: MethodGreaterThanEqual, Attribute: attribute, Values: []any{value}}
}

// LessThanEqual matches attribute <= value
func LessThanEqual(attribute string, value any) Predicate {
	return Predicate{Method: MethodLessThanEqual, Attribute: attribute, Values: []any{value}}
}

// Search matches attribute containing the text
func Search(attribute, text string) Predicate {
	return Predicate{Method: MethodSearch, Attribute: attribute, Values: []any{text}}
}

// Or matches when any nested predicate matches
func Or(queries ...Predicate) Predicate {
	return Predicate{Method: MethodOr, Queries: queries}
}

// OrderDesc sorts by attribute, newest/largest first
func OrderDesc(attribute string) Predicate {
	return Predicate{Method: MethodOrderDesc, Attribute: attribute}
}

// Limit caps the number of returned records
func Limit(n int) Predicate {
	return Predicate{Method: MethodLimit, Values: []any{n}}
}
