package models

// Ref is a weak reference to another entity's id. It carries no ownership:
// nothing checks that the target exists and deleting the target does not
// touch the referrer.
type Ref string

// IsSet reports whether the reference points anywhere.
func (r Ref) IsSet() bool {
	return r != ""
}

func (r Ref) String() string {
	return string(r)
}
