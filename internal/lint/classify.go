package lint

import "strcheck/internal/types"

// conversionMember is the member whose declaration counts as an override.
const conversionMember = "ToString"

// maxChain bounds the base walk on malformed hierarchies.
const maxChain = 1024

// Classifier answers the stringification questions for one unit.
type Classifier struct {
	ts        TypeSystem
	object    types.TypeID
	valueRoot types.TypeID
	text      types.TypeID
}

func NewClassifier(ts TypeSystem) *Classifier {
	b := ts.Builtins()
	return &Classifier{ts: ts, object: b.Object, valueRoot: b.ValueType, text: b.String}
}

func (c *Classifier) IsText(t types.TypeID) bool {
	return t != types.NoTypeID && t == c.text
}

func (c *Classifier) IsRootObject(t types.TypeID) bool {
	return t != types.NoTypeID && t == c.object
}

func (c *Classifier) IsValueRoot(t types.TypeID) bool {
	return t != types.NoTypeID && t == c.valueRoot
}

func (c *Classifier) isRoot(t types.TypeID) bool {
	return c.IsRootObject(t) || c.IsValueRoot(t)
}

// IsObjectArray reports whether t is object[].
func (c *Classifier) IsObjectArray(t types.TypeID) bool {
	if t == types.NoTypeID {
		return false
	}
	return c.ts.ArrayElem(t) == c.object
}

// LacksOverriddenConversion reports whether converting a t to text falls
// back to the default object representation. Unknown types never qualify.
func (c *Classifier) LacksOverriddenConversion(t types.TypeID) bool {
	if t == types.NoTypeID || c.IsText(t) || c.isRoot(t) {
		return false
	}
	steps := 0
	for cur := t; cur != types.NoTypeID && !c.isRoot(cur); cur = c.ts.Base(cur) {
		if c.ts.DeclaresMember(cur, conversionMember) {
			return false
		}
		steps++
		if steps > maxChain {
			return false
		}
	}
	return true
}
